package authsdk

import "time"

// ============================================================================
// Envelope
// ============================================================================

// Envelope is the wrapper around every JSON response of the service.
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data,omitempty"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse is the body of a failed request. Used for the API docs and
// for parsing failures.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode" example:"401"`
	Message    string `json:"message" example:"invalid password"`
	Success    bool   `json:"success" example:"false"`
}

// Empty is the data of responses that carry nothing.
type Empty struct{}

// ============================================================================
// Client Types
// ============================================================================

// Client is a registered client without any credential material.
type Client struct {
	ID        string    `json:"id" example:"01JABCDEF0123456789ABCDEFG"`
	Name      string    `json:"name" example:"Ann Example"`
	Email     string    `json:"email" example:"ann@example.com"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name" example:"Ann Example"`
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Client       Client `json:"client"`
	ClientName   string `json:"clientName"`
	ClientID     string `json:"clientID"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest is the optional body of POST /refreshToken. The
// refreshToken cookie takes precedence.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokensResponse is the data of a successful refresh.
type TokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest is the body of POST /changePassword.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// GoogleLoginResponse is the data of a completed Google callback.
type GoogleLoginResponse struct {
	Token string `json:"token"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response from /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"1.0.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks holds dependency status for the readiness endpoint.
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
}
