package http

import (
	"net/http"

	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/pkg/authsdk"
	"github.com/aussiebroadwan/iic/pkg/httpx"
)

// GoogleHandler serves the Google login bridge.
type GoogleHandler struct {
	GoogleService *service.GoogleService
}

// HandleRedirect handles GET /sessions/google
//
//	@Summary		Start Google Login
//	@Description	Redirects the browser to Google's authorization endpoint.
//	@Tags			Google
//	@Success		302	"Location: Google authorization URL"
//	@Router			/sessions/google [get].
func (h *GoogleHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	http.Redirect(w, r, h.GoogleService.AuthCodeURL(), http.StatusFound)
}

// HandleCallback handles GET /sessions/googleCallback
//
//	@Summary		Complete Google Login
//	@Description	Exchanges the authorization code with Google and returns a locally signed token valid for one hour.
//	@Description	Google identities are not linked to registered clients.
//	@Tags			Google
//	@Produce		json
//	@Param			code	query		string											true	"Authorization code"
//	@Success		200		{object}	authsdk.Envelope[authsdk.GoogleLoginResponse]	"local token"
//	@Failure		400		{object}	authsdk.ErrorResponse							"authorization code not provided"
//	@Failure		500		{object}	authsdk.ErrorResponse							"google rejected the exchange"
//	@Router			/sessions/googleCallback [get].
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	login, err := h.GoogleService.HandleCallback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusOK, authsdk.GoogleLoginResponse{Token: login.Token},
		"google authentication successful")
}
