package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// Session represents a logged in client. It holds the current token pair
// and replaces it whenever Refresh succeeds.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	clientID     string
	clientName   string
	accessToken  string
	refreshToken string
}

// NewSessionFromTokens creates a session from tokens obtained elsewhere.
func (c *SDKClient) NewSessionFromTokens(clientID, accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		clientID:     clientID,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// ClientID returns the id of the logged in client.
func (s *Session) ClientID() string { return s.clientID }

// ClientName returns the display name reported at login.
func (s *Session) ClientName() string { return s.clientName }

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh rotates the session's tokens.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	return nil
}

// Logout ends the session on the server. The session keeps its access
// token, which stays valid until it expires.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}
	if err := decodeEnvelope[Empty](resp, nil, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}

// ChangePassword replaces the client's password.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/changePassword", ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	return decodeEnvelope[Empty](resp, nil, http.StatusOK)
}
