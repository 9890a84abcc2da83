package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
	"github.com/aussiebroadwan/iic/internal/auth/store"
)

type clientsRepo struct {
	db *sql.DB
}

const clientColumns = `id, name, email, password_hash, refresh_token_hash,
	refresh_expires_at, session_version, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c         domain.Client
		tokenHash sql.NullString
		expiresAt sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.PasswordHash,
		&tokenHash,
		&expiresAt,
		&c.SessionVersion,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.RefreshTokenHash = mapNullString(tokenHash)
	c.RefreshExpiresAt = mapNullMillisPtr(expiresAt)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	return scanClient(row)
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE email = ?`, email)
	return scanClient(row)
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, password_hash, session_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)`,
		c.ID, c.Name, c.Email, c.PasswordHash,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *clientsRepo) UpdatePasswordHash(ctx context.Context, clientID, newHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, toMillis(time.Now()), clientID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *clientsRepo) SetRefreshToken(
	ctx context.Context,
	clientID, tokenHash string,
	expiresAt time.Time,
	expectedVersion int64,
) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET refresh_token_hash = ?, refresh_expires_at = ?,
		    session_version = session_version + 1, updated_at = ?
		WHERE id = ? AND session_version = ?`,
		tokenHash, toMillis(expiresAt), toMillis(time.Now()),
		clientID, expectedVersion,
	)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		return expectedVersion + 1, nil
	}

	// Nothing matched: either the client is gone or someone else won.
	if _, err := r.GetClientByID(ctx, clientID); err != nil {
		return 0, err
	}
	return 0, store.ErrStale
}

func (r *clientsRepo) ClearRefreshToken(ctx context.Context, clientID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET refresh_token_hash = NULL, refresh_expires_at = NULL,
		    session_version = session_version + 1, updated_at = ?
		WHERE id = ?`,
		toMillis(time.Now()), clientID,
	)
	return err
}

func (r *clientsRepo) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET refresh_token_hash = NULL, refresh_expires_at = NULL,
		    session_version = session_version + 1, updated_at = ?
		WHERE refresh_expires_at IS NOT NULL AND refresh_expires_at <= ?`,
		toMillis(now), toMillis(now),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
