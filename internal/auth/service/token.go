package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
	"github.com/aussiebroadwan/iic/internal/auth/store"
	"github.com/aussiebroadwan/iic/pkg/cryptox"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/aussiebroadwan/iic/pkg/slogx"
)

// maxIssueAttempts bounds the compare-and-set retries when a login races
// another write to the same client.
const maxIssueAttempts = 3

// TokenService mints access and refresh tokens for stored clients and keeps
// the single active refresh token per client.
type TokenService struct {
	Store         store.Store
	AccessSigner  jwtx.Signer
	RefreshSigner jwtx.Signer
	Issuer        string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// IssueTokenPair loads the client and issues a fresh pair, replacing any
// previously stored refresh token. A lost race against a concurrent write is
// retried with a fresh read.
func (s *TokenService) IssueTokenPair(ctx context.Context, clientID string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	for attempt := 1; ; attempt++ {
		client, err := s.Store.Clients().GetClientByID(ctx, clientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundError("client not found")
			}
			return nil, tokenIssuanceError(err)
		}

		pair, err := s.RotateTokenPair(ctx, client)
		if err == nil {
			return pair, nil
		}
		if !errors.Is(err, store.ErrStale) || attempt >= maxIssueAttempts {
			return nil, tokenIssuanceError(err)
		}

		l.Debug("refresh token write lost a race, retrying",
			slog.String("client_id", clientID),
			slog.Int("attempt", attempt),
		)
	}
}

// RotateTokenPair issues a pair for an already loaded client. The refresh
// token is stored only if the client's session version is unchanged since
// it was loaded, otherwise store.ErrStale is returned and no tokens are
// handed out.
func (s *TokenService) RotateTokenPair(ctx context.Context, client domain.Client) (*domain.TokenPair, error) {
	now := s.now()

	access, err := s.AccessSigner.Sign(jwtx.NewAccessClaims(
		client.ID, client.Email, client.Name, s.Issuer, s.AccessTTL, now,
	))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := jwtx.NewRefreshClaims(client.ID, s.Issuer, s.RefreshTTL, now)
	refresh, err := s.RefreshSigner.Sign(refreshClaims)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	refreshExp := refreshClaims.ExpiresAt.Time
	_, err = s.Store.Clients().SetRefreshToken(ctx,
		client.ID,
		cryptox.FingerprintToken(refresh),
		refreshExp,
		client.SessionVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  now.Add(s.AccessTTL),
		RefreshExpiresAt: refreshExp,
	}, nil
}
