package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/internal/auth/store"
	"github.com/aussiebroadwan/iic/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/iic/pkg/cryptox"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

const testIssuer = "iic-auth-test"

var (
	accessSecret   = []byte("access-secret-0123456789abcdefghij")
	refreshSecret  = []byte("refresh-secret-0123456789abcdefghi")
	providerSecret = []byte("provider-secret-0123456789abcdefgh")
)

type fixture struct {
	store    store.Store
	tokens   *service.TokenService
	clients  *service.ClientService
	access   jwtx.Verifier
	refresh  jwtx.Verifier
	password string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cryptox.SetPepper("test-pepper")

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations(context.Background()))

	accessSigner, err := jwtx.NewSignerHS256("access", accessSecret)
	require.NoError(t, err)
	refreshSigner, err := jwtx.NewSignerHS256("refresh", refreshSecret)
	require.NoError(t, err)

	refreshVerifier := jwtx.NewVerifierHS256(refreshSecret, jwtx.VerifyOptions{
		Issuer:    testIssuer,
		TokenType: jwtx.TypeRefresh,
	})

	tokens := &service.TokenService{
		Store:         st,
		AccessSigner:  accessSigner,
		RefreshSigner: refreshSigner,
		Issuer:        testIssuer,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}

	return &fixture{
		store:  st,
		tokens: tokens,
		clients: &service.ClientService{
			Store:           st,
			Tokens:          tokens,
			RefreshVerifier: refreshVerifier,
		},
		access: jwtx.NewVerifierHS256(accessSecret, jwtx.VerifyOptions{
			Issuer:    testIssuer,
			TokenType: jwtx.TypeAccess,
		}),
		refresh:  refreshVerifier,
		password: gofakeit.Password(true, true, true, false, false, 16),
	}
}

// registered creates a client and returns its id and email.
func (f *fixture) registered(t *testing.T) (string, string) {
	t.Helper()

	email := service.NormalizeEmail(gofakeit.Email())
	c, err := f.clients.Register(context.Background(), gofakeit.Name(), email, f.password)
	require.NoError(t, err)
	return c.ID, email
}
