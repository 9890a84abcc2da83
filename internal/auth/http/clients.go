package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/pkg/authsdk"
	"github.com/aussiebroadwan/iic/pkg/httpx"
)

// ClientsHandler serves the password based account endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
	Cookies       httpx.CookieConfig
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func toSDKClient(c domain.PublicClient) authsdk.Client {
	return authsdk.Client{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *ClientsHandler) setSessionCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	h.Cookies.Set(w, httpx.CookieAccessToken, pair.AccessToken, h.AccessTTL)
	h.Cookies.Set(w, httpx.CookieRefreshToken, pair.RefreshToken, h.RefreshTTL)
}

// identityFromRequest returns the caller set by the authn middleware.
func identityFromRequest(r *http.Request) (domain.LocalIdentity, bool) {
	clientID, ok := httpx.ClientIDFromContext(r.Context())
	if !ok {
		return domain.LocalIdentity{}, false
	}
	id := domain.LocalIdentity{ClientID: clientID}
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		id.Email = claims.Email
		id.Name = claims.Name
	}
	return id, true
}

func invalidBody(w http.ResponseWriter) {
	httpx.WriteMessage(w, http.StatusBadRequest, "invalid JSON in request body")
}

// HandleRegister handles POST /register
//
//	@Summary		Register Client
//	@Description	Creates a client from name, email and password. The response never contains credential material.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest							true	"Registration request"
//	@Success		201		{object}	authsdk.Envelope[authsdk.Client]				"created client"
//	@Failure		400		{object}	authsdk.ErrorResponse							"missing or malformed fields"
//	@Failure		409		{object}	authsdk.ErrorResponse							"email already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse							"internal error"
//	@Router			/register [post].
func (h *ClientsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	client, err := h.ClientService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, toSDKClient(client), "client created successfully")
}

// HandleLogin handles POST /login
//
//	@Summary		Log In
//	@Description	Verifies email and password and issues an access and refresh token. Both are also set as HttpOnly cookies.
//	@Description	Logging in invalidates any refresh token issued before.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest						true	"Login request"
//	@Success		200		{object}	authsdk.Envelope[authsdk.LoginResponse]		"client and tokens"
//	@Failure		400		{object}	authsdk.ErrorResponse						"missing fields"
//	@Failure		401		{object}	authsdk.ErrorResponse						"invalid password"
//	@Failure		404		{object}	authsdk.ErrorResponse						"client is not registered"
//	@Header			200		{string}	Set-Cookie									"accessToken and refreshToken"
//	@Router			/login [post].
func (h *ClientsHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	res, err := h.ClientService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookies(w, res.Tokens)
	httpx.WriteData(w, http.StatusOK, authsdk.LoginResponse{
		Client:       toSDKClient(res.Client),
		ClientName:   res.Identity.Name,
		ClientID:     res.Identity.Subject(),
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}, "client logged in successfully")
}

// HandleLogout handles POST /logout
//
//	@Summary		Log Out
//	@Description	Drops the client's refresh token and clears both session cookies.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.Envelope[authsdk.Empty]	"logged out"
//	@Failure		401	{object}	authsdk.ErrorResponse			"missing or invalid access token"
//	@Router			/logout [post].
func (h *ClientsHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFromRequest(r)
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := h.ClientService.Logout(r.Context(), caller.Subject()); err != nil {
		writeError(w, r, err)
		return
	}

	h.Cookies.Clear(w, httpx.CookieAccessToken)
	h.Cookies.Clear(w, httpx.CookieRefreshToken)
	httpx.WriteData(w, http.StatusOK, authsdk.Empty{}, "client logged out successfully")
}

// HandleRefresh handles POST /refreshToken
//
//	@Summary		Refresh Tokens
//	@Description	Exchanges the current refresh token for a new pair. The token is read from the refreshToken cookie or the request body.
//	@Description	A refresh token can be used once. Only the most recently issued one is accepted.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest						false	"Refresh token when no cookie is sent"
//	@Success		200		{object}	authsdk.Envelope[authsdk.TokensResponse]	"new token pair"
//	@Failure		401		{object}	authsdk.ErrorResponse						"missing, invalid, expired or reused refresh token"
//	@Header			200		{string}	Set-Cookie									"accessToken and refreshToken"
//	@Router			/refreshToken [post].
func (h *ClientsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var presented string
	if c, err := r.Cookie(httpx.CookieRefreshToken); err == nil {
		presented = c.Value
	}
	if presented == "" {
		// An unreadable body counts as an absent token.
		var req authsdk.RefreshRequest
		if err := httpx.DecodeJSON(r, &req); err == nil {
			presented = req.RefreshToken
		}
	}

	pair, err := h.ClientService.Refresh(r.Context(), presented)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setSessionCookies(w, pair)
	httpx.WriteData(w, http.StatusOK, authsdk.TokensResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
}

// HandleChangePassword handles POST /changePassword
//
//	@Summary		Change Password
//	@Description	Replaces the password after checking the old one. Existing tokens stay valid.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.ChangePasswordRequest	true	"Old and new password"
//	@Success		200		{object}	authsdk.Envelope[authsdk.Empty]	"password changed"
//	@Failure		400		{object}	authsdk.ErrorResponse			"missing fields"
//	@Failure		401		{object}	authsdk.ErrorResponse			"wrong old password or invalid access token"
//	@Router			/changePassword [post].
func (h *ClientsHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := identityFromRequest(r)
	if !ok {
		httpx.WriteMessage(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		invalidBody(w)
		return
	}

	if err := h.ClientService.ChangePassword(r.Context(), caller.Subject(), req.OldPassword, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.Empty{}, "password changed successfully")
}
