package jwtx

import (
	"time"

	"github.com/aussiebroadwan/iic/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Default token TTL constants. They can be overridden per-service through
// configuration.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	// ProviderTokenTTL is the fixed lifetime of tokens minted for an
	// external identity provider login.
	ProviderTokenTTL = time.Hour
)

// Token types carried in the token_type claim. Access and refresh tokens
// are signed with different secrets, the claim is a second guard so that a
// token of one kind is never accepted as the other.
const (
	TypeAccess   = "access"
	TypeRefresh  = "refresh"
	TypeProvider = "provider"
)

// Claims are the JWT claims used by every token we mint.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType is one of TypeAccess, TypeRefresh, TypeProvider
	TokenType string `json:"token_type,omitempty"`

	// Email of the identity the token was minted for
	Email string `json:"email,omitempty"`

	// Name is the display name of the identity
	Name string `json:"name,omitempty"`

	// IdP names the external identity provider for provider tokens
	IdP string `json:"idp,omitempty"`
}

// NewAccessClaims builds claims for a short-lived access token.
func NewAccessClaims(
	subject, email, name string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: registered(subject, issuer, ttl, now),
		TokenType:        TypeAccess,
		Email:            email,
		Name:             name,
	}
}

// NewRefreshClaims builds claims for a refresh token. Refresh tokens only
// identify the subject.
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(subject, issuer, ttl, now),
		TokenType:        TypeRefresh,
	}
}

// NewProviderClaims builds claims for a token minted after an external
// provider login. The subject is the provider's subject id, not a client id.
func NewProviderClaims(
	idp, subject, email, name string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: registered(subject, issuer, ttl, now),
		TokenType:        TypeProvider,
		Email:            email,
		Name:             name,
		IdP:              idp,
	}
}

func registered(subject, issuer string, ttl time.Duration, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. Two
// tokens minted for the same subject in the same second must still differ,
// refresh rotation depends on it.
func NewJTI() string {
	id, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		panic(err)
	}
	return id
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateType checks the token_type claim.
func (c *Claims) ValidateType(expected string) error {
	if expected == "" {
		return nil
	}

	if c.TokenType != expected {
		return ErrTokenType
	}

	return nil
}
