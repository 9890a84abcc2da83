package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
	"github.com/aussiebroadwan/iic/internal/auth/store"
	"github.com/aussiebroadwan/iic/pkg/cryptox"
	"github.com/aussiebroadwan/iic/pkg/idx"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/aussiebroadwan/iic/pkg/slogx"
)

// ClientService implements the password based account flows.
type ClientService struct {
	Store           store.Store
	Tokens          *TokenService
	RefreshVerifier jwtx.Verifier
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Client   domain.PublicClient
	Identity domain.LocalIdentity
	Tokens   *domain.TokenPair
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new client from a name, email and password.
func (s *ClientService) Register(
	ctx context.Context,
	name, email, password string,
) (domain.PublicClient, error) {
	l := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return domain.PublicClient{}, validationError("all fields are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.PublicClient{}, validationError("email address is not valid")
	}

	// 1. Reject known emails early, the unique index still guards the race.
	if _, err := s.Store.Clients().GetClientByEmail(ctx, email); err == nil {
		return domain.PublicClient{}, conflictError("client already registered, please log in")
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.PublicClient{}, fmt.Errorf("lookup client by email: %w", err)
	}

	// 2. Hash the password
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.PublicClient{}, fmt.Errorf("hash password: %w", err)
	}

	// 3. Persist
	client := domain.Client{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicClient{}, conflictError("client already registered, please log in")
		}
		l.Error("failed to create client", slog.Any("error", err))
		return domain.PublicClient{}, fmt.Errorf("create client: %w", err)
	}

	created, err := s.Store.Clients().GetClientByID(ctx, client.ID)
	if err != nil {
		return domain.PublicClient{}, fmt.Errorf("reload client: %w", err)
	}

	l.Info("client registered", slog.String("client_id", created.ID))
	return created.Public(), nil
}

// Login verifies an email and password and issues a fresh token pair,
// replacing any previous session.
func (s *ClientService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	client, err := s.Store.Clients().GetClientByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundError("client is not registered")
		}
		return nil, fmt.Errorf("lookup client by email: %w", err)
	}

	if err := cryptox.VerifyPassword(password, client.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Info("login failed", slog.String("client_id", client.ID))
			return nil, unauthorizedError("invalid password", nil)
		}
		return nil, fmt.Errorf("verify password: %w", err)
	}

	pair, err := s.Tokens.IssueTokenPair(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	l.Info("client logged in", slog.String("client_id", client.ID))
	return &LoginResult{
		Client:   client.Public(),
		Identity: domain.LocalIdentityOf(&client),
		Tokens:   pair,
	}, nil
}

// Logout drops the client's refresh token. Unknown clients are ignored.
func (s *ClientService) Logout(ctx context.Context, clientID string) error {
	if err := s.Store.Clients().ClearRefreshToken(ctx, clientID); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}
	slogx.FromContext(ctx).Info("client logged out", slog.String("client_id", clientID))
	return nil
}

// Refresh exchanges the current refresh token for a new pair. Only the most
// recently issued refresh token is accepted, every other failure is
// reported as unauthorized.
func (s *ClientService) Refresh(ctx context.Context, presented string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	if presented == "" {
		return nil, unauthorizedError("refresh token is required", nil)
	}

	claims, err := s.RefreshVerifier.Verify(presented)
	if err != nil {
		return nil, unauthorizedError("invalid or expired refresh token", err)
	}

	client, err := s.Store.Clients().GetClientByID(ctx, claims.Subject)
	if err != nil {
		return nil, unauthorizedError("invalid refresh token", err)
	}

	if !cryptox.MatchFingerprint(presented, client.RefreshTokenHash) {
		l.Warn("refresh token reuse rejected", slog.String("client_id", client.ID))
		return nil, unauthorizedError("refresh token is either used or expired", nil)
	}

	pair, err := s.Tokens.RotateTokenPair(ctx, client)
	if err != nil {
		if errors.Is(err, store.ErrStale) {
			l.Warn("concurrent refresh lost", slog.String("client_id", client.ID))
			return nil, unauthorizedError("refresh token is either used or expired", err)
		}
		return nil, unauthorizedError("invalid refresh token", err)
	}

	return pair, nil
}

// ChangePassword replaces the password after checking the old one. Active
// sessions are left alone.
func (s *ClientService) ChangePassword(
	ctx context.Context,
	clientID, oldPassword, newPassword string,
) error {
	if oldPassword == "" || newPassword == "" {
		return validationError("old and new password are required")
	}

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return unauthorizedError("unknown client", nil)
		}
		return fmt.Errorf("lookup client: %w", err)
	}

	if err := cryptox.VerifyPassword(oldPassword, client.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return unauthorizedError("wrong old password entered", nil)
		}
		return fmt.Errorf("verify password: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.Store.Clients().UpdatePasswordHash(ctx, client.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slogx.FromContext(ctx).Info("password changed", slog.String("client_id", client.ID))
	return nil
}
