package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeGoogle struct {
	*httptest.Server
	tokenCalls atomic.Int32
	infoCalls  atomic.Int32
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	g := &fakeGoogle{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if r.PostForm.Get("grant_type") != "authorization_code" ||
			r.PostForm.Get("client_id") != "google-client" ||
			r.PostForm.Get("client_secret") != "google-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		resp := map[string]any{
			"access_token": "provider-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		switch r.PostForm.Get("code") {
		case "good":
			resp["id_token"] = "id-good"
		case "broken-info":
			resp["id_token"] = "id-broken"
		case "no-id":
		default:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("GET /tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		g.infoCalls.Add(1)
		if r.URL.Query().Get("id_token") != "id-good" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sub":   "g-123",
			"email": "gee@example.com",
			"name":  "Gee",
		})
	})

	g.Server = httptest.NewServer(mux)
	t.Cleanup(g.Close)
	return g
}

func newGoogleService(t *testing.T, g *fakeGoogle) *service.GoogleService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256("provider", providerSecret)
	require.NoError(t, err)

	return service.NewGoogleService(service.GoogleConfig{
		ClientID:     "google-client",
		ClientSecret: "google-secret",
		RedirectURI:  "http://localhost:8080/sessions/googleCallback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  g.URL + "/auth",
			TokenURL: g.URL + "/token",
		},
		TokenInfoURL: g.URL + "/tokeninfo",
		HTTPTimeout:  5 * time.Second,
		Issuer:       testIssuer,
	}, signer)
}

func TestGoogle_AuthCodeURL(t *testing.T) {
	g := newFakeGoogle(t)
	svc := newGoogleService(t, g)

	u, err := url.Parse(svc.AuthCodeURL())
	require.NoError(t, err)
	require.Equal(t, "/auth", u.Path)

	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "google-client", q.Get("client_id"))
	require.Equal(t, "http://localhost:8080/sessions/googleCallback", q.Get("redirect_uri"))
	require.Contains(t, q.Get("scope"), "userinfo.profile")
	require.Contains(t, q.Get("scope"), "userinfo.email")
}

func TestGoogle_DefaultsToGoogleEndpoint(t *testing.T) {
	signer, err := jwtx.NewSignerHS256("provider", providerSecret)
	require.NoError(t, err)

	svc := service.NewGoogleService(service.GoogleConfig{ClientID: "id"}, signer)
	require.Contains(t, svc.AuthCodeURL(), "accounts.google.com")
}

func TestGoogle_Callback(t *testing.T) {
	ctx := context.Background()

	t.Run("success mints a one hour provider token", func(t *testing.T) {
		g := newFakeGoogle(t)
		svc := newGoogleService(t, g)
		fixed := time.Now().Truncate(time.Second)
		svc.Now = func() time.Time { return fixed }

		login, err := svc.HandleCallback(ctx, "good")
		require.NoError(t, err)
		require.Equal(t, "g-123", login.Identity.Sub)
		require.Equal(t, service.ProviderGoogle, login.Identity.Provider)

		claims, err := jwtx.NewVerifierHS256(providerSecret, jwtx.VerifyOptions{
			TokenType: jwtx.TypeProvider,
		}).Verify(login.Token)
		require.NoError(t, err)
		require.Equal(t, "g-123", claims.Subject)
		require.Equal(t, "gee@example.com", claims.Email)
		require.Equal(t, "Gee", claims.Name)
		require.Equal(t, "google", claims.IdP)
		require.True(t, fixed.Add(time.Hour).Equal(claims.ExpiresAt.Time))
	})

	t.Run("missing code makes no outbound calls", func(t *testing.T) {
		g := newFakeGoogle(t)
		svc := newGoogleService(t, g)

		_, err := svc.HandleCallback(ctx, "")
		require.ErrorIs(t, err, service.ErrBadRequest)
		require.Zero(t, g.tokenCalls.Load())
		require.Zero(t, g.infoCalls.Load())
	})

	t.Run("exchange rejected", func(t *testing.T) {
		g := newFakeGoogle(t)
		svc := newGoogleService(t, g)

		_, err := svc.HandleCallback(ctx, "expired-code")
		require.ErrorIs(t, err, service.ErrUpstream)
		require.Zero(t, g.infoCalls.Load())
	})

	t.Run("no id_token issues nothing", func(t *testing.T) {
		g := newFakeGoogle(t)
		svc := newGoogleService(t, g)

		login, err := svc.HandleCallback(ctx, "no-id")
		require.ErrorIs(t, err, service.ErrUpstream)
		require.Nil(t, login)
		require.Zero(t, g.infoCalls.Load())
	})

	t.Run("tokeninfo failure", func(t *testing.T) {
		g := newFakeGoogle(t)
		svc := newGoogleService(t, g)

		_, err := svc.HandleCallback(ctx, "broken-info")
		require.ErrorIs(t, err, service.ErrUpstream)
		require.Equal(t, int32(1), g.infoCalls.Load())
	})
}
