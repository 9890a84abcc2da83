package domain

import "time"

// Client is a registered account that logs in with email and password.
type Client struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // argon2 encoded

	// RefreshTokenHash is the fingerprint of the last refresh token issued,
	// empty when no session is active.
	RefreshTokenHash string
	RefreshExpiresAt *time.Time

	// SessionVersion increases on every refresh token write and guards
	// against concurrent rotation.
	SessionVersion int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSession reports whether a refresh token is currently stored.
func (c *Client) HasSession() bool {
	return c.RefreshTokenHash != ""
}

// Public strips credential material from the record.
func (c *Client) Public() PublicClient {
	return PublicClient{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// PublicClient is the client record as returned to callers.
type PublicClient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
