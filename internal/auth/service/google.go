package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/aussiebroadwan/iic/pkg/slogx"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// ProviderGoogle is the idp claim of tokens minted for Google logins.
	ProviderGoogle = "google"

	// DefaultGoogleTokenInfoURL resolves an id_token into its claims.
	DefaultGoogleTokenInfoURL = "https://www.googleapis.com/oauth2/v3/tokeninfo"
)

// GoogleScopes are requested on every authorization redirect.
var GoogleScopes = []string{
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// GoogleConfig holds the settings for the Google login bridge.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Endpoint and TokenInfoURL default to Google's production endpoints.
	Endpoint     oauth2.Endpoint
	TokenInfoURL string

	HTTPTimeout time.Duration
	Issuer      string
}

// GoogleService turns a Google authorization code into a locally signed
// token. It never touches the credential store.
type GoogleService struct {
	oauth        *oauth2.Config
	tokenInfoURL string
	httpClient   *http.Client
	signer       jwtx.Signer
	issuer       string

	// Now is overridable in tests.
	Now func() time.Time
}

// GoogleLogin is the result of a completed callback.
type GoogleLogin struct {
	Token    string
	Identity domain.ProviderIdentity
}

// NewGoogleService builds the bridge. signer signs the local token.
func NewGoogleService(cfg GoogleConfig, signer jwtx.Signer) *GoogleService {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	// Client credentials travel in the form body.
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	tokenInfoURL := cfg.TokenInfoURL
	if tokenInfoURL == "" {
		tokenInfoURL = DefaultGoogleTokenInfoURL
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       GoogleScopes,
			Endpoint:     endpoint,
		},
		tokenInfoURL: tokenInfoURL,
		httpClient:   &http.Client{Timeout: timeout},
		signer:       signer,
		issuer:       cfg.Issuer,
	}
}

func (s *GoogleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AuthCodeURL is where the browser is sent to start a Google login.
func (s *GoogleService) AuthCodeURL() string {
	return s.oauth.AuthCodeURL("")
}

// HandleCallback exchanges the authorization code, resolves the id_token
// and mints a one hour local token for the Google identity.
func (s *GoogleService) HandleCallback(ctx context.Context, code string) (*GoogleLogin, error) {
	l := slogx.FromContext(ctx)

	if code == "" {
		return nil, badRequestError("authorization code not provided")
	}

	// 1. Exchange the code server to server
	octx := context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	tok, err := s.oauth.Exchange(octx, code)
	if err != nil {
		l.Error("google code exchange failed", slog.Any("error", err))
		return nil, upstreamError("failed to exchange code for token", err)
	}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		l.Error("google token response has no id_token")
		return nil, upstreamError("failed to get id token from google", nil)
	}

	// 2. Resolve the id_token into an identity
	identity, err := s.fetchTokenInfo(ctx, idToken)
	if err != nil {
		l.Error("google tokeninfo failed", slog.Any("error", err))
		return nil, upstreamError("failed to fetch user info from google", err)
	}

	// 3. Mint the local token
	signed, err := s.signer.Sign(jwtx.NewProviderClaims(
		ProviderGoogle, identity.Sub, identity.Email, identity.Name,
		s.issuer, jwtx.ProviderTokenTTL, s.now(),
	))
	if err != nil {
		return nil, fmt.Errorf("sign provider token: %w", err)
	}

	l.Info("google login", slog.String("sub", identity.Sub))
	return &GoogleLogin{Token: signed, Identity: identity}, nil
}

type tokenInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *GoogleService) fetchTokenInfo(ctx context.Context, idToken string) (domain.ProviderIdentity, error) {
	u, err := url.Parse(s.tokenInfoURL)
	if err != nil {
		return domain.ProviderIdentity{}, fmt.Errorf("parse tokeninfo url: %w", err)
	}
	q := u.Query()
	q.Set("id_token", idToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.ProviderIdentity{}, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.ProviderIdentity{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.ProviderIdentity{}, fmt.Errorf("tokeninfo returned %d: %s", resp.StatusCode, body)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return domain.ProviderIdentity{}, fmt.Errorf("decode tokeninfo: %w", err)
	}
	if info.Sub == "" {
		return domain.ProviderIdentity{}, fmt.Errorf("tokeninfo has no sub")
	}

	return domain.ProviderIdentity{
		Provider: ProviderGoogle,
		Sub:      info.Sub,
		Email:    info.Email,
		Name:     info.Name,
	}, nil
}
