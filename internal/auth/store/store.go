package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrStale is returned when a compare-and-set on the session version
	// loses to a concurrent write.
	ErrStale = errors.New("store: stale session version")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// mongodb) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Clients() Clients

	// ApplyMigrations brings the schema (or indexes) up to date.
	ApplyMigrations(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Clients interface {
	// GetClientByID returns a client by id.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetClientByEmail is used during login and registration.
	GetClientByEmail(ctx context.Context, email string) (domain.Client, error)

	// CreateClient inserts a new client (id is provided by app via ULID).
	// A duplicate email yields ErrAlreadyExists.
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, clientID, newHash string) error

	// SetRefreshToken stores a refresh token fingerprint if the stored
	// session version still equals expectedVersion, and returns the new
	// version. A mismatch yields ErrStale, an unknown id ErrNotFound.
	SetRefreshToken(
		ctx context.Context,
		clientID, tokenHash string,
		expiresAt time.Time,
		expectedVersion int64,
	) (int64, error)

	// ClearRefreshToken unsets the refresh token and bumps the session
	// version. Unknown ids are not an error.
	ClearRefreshToken(ctx context.Context, clientID string) error

	// ClearExpiredRefreshTokens is housekeeping. It returns the number of
	// sessions cleared.
	ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
