package authsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the authentication service. It provides the
// unauthenticated operations and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new client account.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Client, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/register", req, nil)
	if err != nil {
		return nil, err
	}

	var client Client
	if err := decodeEnvelope(resp, &client, http.StatusCreated); err != nil {
		return nil, err
	}
	return &client, nil
}

// Login authenticates with email and password and returns a Session
// holding the issued tokens.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", LoginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeEnvelope(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}

	return &Session{
		client:       c,
		clientID:     login.ClientID,
		clientName:   login.ClientName,
		accessToken:  login.AccessToken,
		refreshToken: login.RefreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// no longer usable afterwards.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokensResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/refreshToken", RefreshRequest{
		RefreshToken: refreshToken,
	}, nil)
	if err != nil {
		return nil, err
	}

	var tokens TokensResponse
	if err := decodeEnvelope(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// GoogleAuthURL returns where /sessions/google redirects the browser.
func (c *SDKClient) GoogleAuthURL(ctx context.Context) (string, error) {
	noFollow := *c.HTTPClient
	noFollow.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/sessions/google"), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := noFollow.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.New("redirect without location")
	}
	return location, nil
}

// GoogleCallback completes a Google login with the authorization code and
// returns the locally signed token.
func (c *SDKClient) GoogleCallback(ctx context.Context, code string) (*GoogleLoginResponse, error) {
	path := "/sessions/googleCallback"
	if code != "" {
		path += "?code=" + url.QueryEscape(code)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out GoogleLoginResponse
	if err := decodeEnvelope(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
