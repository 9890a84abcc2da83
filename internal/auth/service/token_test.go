package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/internal/auth/store"
	"github.com/aussiebroadwan/iic/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenPair_UnknownClient(t *testing.T) {
	f := newFixture(t)

	pair, err := f.tokens.IssueTokenPair(context.Background(), "ghost")
	require.ErrorIs(t, err, service.ErrNotFound)
	require.Nil(t, pair)
}

func TestIssueTokenPair_ExpiryAndPersistence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, _ := f.registered(t)

	fixed := time.Now().Truncate(time.Second)
	f.tokens.Now = func() time.Time { return fixed }

	pair, err := f.tokens.IssueTokenPair(ctx, id)
	require.NoError(t, err)
	require.True(t, fixed.Add(15*time.Minute).Equal(pair.AccessExpiresAt))
	require.True(t, fixed.Add(24*time.Hour).Equal(pair.RefreshExpiresAt))

	stored, err := f.store.Clients().GetClientByID(ctx, id)
	require.NoError(t, err)
	require.True(t, cryptox.MatchFingerprint(pair.RefreshToken, stored.RefreshTokenHash))
	require.NotNil(t, stored.RefreshExpiresAt)
	require.True(t, pair.RefreshExpiresAt.Equal(*stored.RefreshExpiresAt))
}

func TestRotateTokenPair_StaleVersion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, _ := f.registered(t)

	loaded, err := f.store.Clients().GetClientByID(ctx, id)
	require.NoError(t, err)

	// Someone else writes first.
	_, err = f.tokens.IssueTokenPair(ctx, id)
	require.NoError(t, err)

	pair, err := f.tokens.RotateTokenPair(ctx, loaded)
	require.ErrorIs(t, err, store.ErrStale)
	require.Nil(t, pair)
}

func TestIssueTokenPair_ConcurrentLoginsAllSucceed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id, _ := f.registered(t)

	const logins = 3
	var wg sync.WaitGroup
	errs := make(chan error, logins)
	for range logins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.tokens.IssueTokenPair(ctx, id)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := f.store.Clients().GetClientByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(logins), stored.SessionVersion)
}
