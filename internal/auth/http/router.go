package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/internal/auth/store"
	"github.com/aussiebroadwan/iic/pkg/httpx"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/aussiebroadwan/iic/pkg/slogx"

	_ "github.com/aussiebroadwan/iic/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	ClientService *service.ClientService
	GoogleService *service.GoogleService

	Cookies    httpx.CookieConfig
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewRouter builds a router. verifier checks access tokens on the
// authenticated routes.
func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Cookies:      httpx.CookieConfig{Secure: true},
		AccessTTL:    jwtx.DefaultAccessTokenTTL,
		RefreshTTL:   jwtx.DefaultRefreshTokenTTL,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerGoogle()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Authentication Service API
//	@version		0.1.0
//	@description	Client registration, password login, refresh token rotation and a Google OAuth2 login bridge.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs. Both are also set as HttpOnly cookies.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/iic
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}". The accessToken cookie is accepted too.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{
		ClientService: r.ClientService,
		Cookies:       r.Cookies,
		AccessTTL:     r.AccessTTL,
		RefreshTTL:    r.RefreshTTL,
	}

	r.Mux.HandleFunc("POST /register", h.HandleRegister)
	r.Mux.HandleFunc("POST /login", h.HandleLogin)
	r.Mux.HandleFunc("POST /refreshToken", h.HandleRefresh)

	r.Mux.Handle("POST /logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout), httpx.AuthnMiddleware(r.verifier)),
	)
	r.Mux.Handle("POST /changePassword",
		httpx.Chain(http.HandlerFunc(h.HandleChangePassword), httpx.AuthnMiddleware(r.verifier)),
	)
}

func (r *Router) registerGoogle() {
	if r.GoogleService == nil {
		return
	}
	h := &GoogleHandler{GoogleService: r.GoogleService}

	r.Mux.HandleFunc("GET /sessions/google", h.HandleRedirect)
	r.Mux.HandleFunc("GET /sessions/googleCallback", h.HandleCallback)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
