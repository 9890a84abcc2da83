package auth_test

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/iic/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRefresh tests the complete flow:
// 1. Register and login
// 2. Refresh the token
// 3. Verify token rotation (new tokens are different from old tokens)
// 4. Verify the spent refresh token is rejected
func TestLoginRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	acct := registerAccount(t, client)

	session := performLogin(t, client, acct)
	oldAccessToken := session.AccessToken()
	oldRefreshToken := session.RefreshToken()

	require.NoError(t, session.Refresh(t.Context()))

	// Verify token rotation
	require.NotEqual(t, oldAccessToken, session.AccessToken(), "Access token should be rotated")
	require.NotEqual(t, oldRefreshToken, session.RefreshToken(), "Refresh token should be rotated")

	_, err := client.Refresh(t.Context(), oldRefreshToken)
	assertStatus(t, err, http.StatusUnauthorized, "Reusing a spent refresh token")

	// The rotated token still works
	require.NoError(t, session.Refresh(t.Context()))
}

// TestLoginInvalidatesPreviousSession verifies only the latest login's
// refresh token is accepted.
func TestLoginInvalidatesPreviousSession(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	acct := registerAccount(t, client)

	first := performLogin(t, client, acct)
	second := performLogin(t, client, acct)

	_, err := client.Refresh(t.Context(), first.RefreshToken())
	assertStatus(t, err, http.StatusUnauthorized, "Refresh with superseded token")

	require.NoError(t, second.Refresh(t.Context()))
}

// TestConcurrentRefresh races several refreshes of the same token, exactly
// one may win.
func TestConcurrentRefresh(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	acct := registerAccount(t, client)
	token := performLogin(t, client, acct).RefreshToken()

	const workers = 8
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Refresh(t.Context(), token); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), successes.Load(), "exactly one refresh should succeed")
}
