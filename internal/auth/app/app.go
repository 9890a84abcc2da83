package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/iic/internal/auth/http"
	"github.com/aussiebroadwan/iic/internal/auth/service"
	"github.com/aussiebroadwan/iic/internal/auth/store"
	"github.com/aussiebroadwan/iic/internal/auth/store/drivers/mongodb"
	"github.com/aussiebroadwan/iic/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/iic/pkg/cryptox"
	"github.com/aussiebroadwan/iic/pkg/httpx"
	"github.com/aussiebroadwan/iic/pkg/jwtx"
	"github.com/aussiebroadwan/iic/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db              store.Store
	accessSigner    jwtx.Signer
	refreshSigner   jwtx.Signer
	providerSigner  jwtx.Signer
	accessVerifier  jwtx.Verifier
	refreshVerifier jwtx.Verifier

	// Services
	tokenService        *service.TokenService
	clientService       *service.ClientService
	googleService       *service.GoogleService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigners(); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize token signers: %w", err)
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// openStore connects the configured store driver.
func openStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case DriverMongoDB:
		return mongodb.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case DriverSQLite, "":
		return sqlite.NewStore(cfg.DatabaseFile)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// initDatabase opens the store and applies migrations
func (app *Application) initDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := openStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

// initSigners builds one signer per token kind. Access, refresh and
// provider tokens never share a secret.
func (app *Application) initSigners() error {
	var err error

	if app.accessSigner, err = jwtx.NewSignerHS256("access", []byte(app.cfg.AccessSecret)); err != nil {
		return fmt.Errorf("access signer: %w", err)
	}
	if app.refreshSigner, err = jwtx.NewSignerHS256("refresh", []byte(app.cfg.RefreshSecret)); err != nil {
		return fmt.Errorf("refresh signer: %w", err)
	}
	if app.cfg.GoogleEnabled() {
		if app.providerSigner, err = jwtx.NewSignerHS256("provider", []byte(app.cfg.ProviderSecret)); err != nil {
			return fmt.Errorf("provider signer: %w", err)
		}
	}

	app.accessVerifier = jwtx.NewVerifierHS256([]byte(app.cfg.AccessSecret), jwtx.VerifyOptions{
		Issuer:    app.cfg.Issuer,
		TokenType: jwtx.TypeAccess,
		Leeway:    5 * time.Second,
	})
	app.refreshVerifier = jwtx.NewVerifierHS256([]byte(app.cfg.RefreshSecret), jwtx.VerifyOptions{
		Issuer:    app.cfg.Issuer,
		TokenType: jwtx.TypeRefresh,
		Leeway:    5 * time.Second,
	})
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Store:         app.db,
		AccessSigner:  app.accessSigner,
		RefreshSigner: app.refreshSigner,
		Issuer:        app.cfg.Issuer,
		AccessTTL:     app.cfg.AccessTokenExpiry,
		RefreshTTL:    app.cfg.RefreshTokenExpiry,
	}

	app.clientService = &service.ClientService{
		Store:           app.db,
		Tokens:          app.tokenService,
		RefreshVerifier: app.refreshVerifier,
	}

	if app.cfg.GoogleEnabled() {
		app.googleService = service.NewGoogleService(service.GoogleConfig{
			ClientID:     app.cfg.GoogleClientID,
			ClientSecret: app.cfg.GoogleClientSecret,
			RedirectURI:  app.cfg.GoogleRedirectURI,
			HTTPTimeout:  app.cfg.GoogleHTTPTimeout,
			Issuer:       app.cfg.Issuer,
		}, app.providerSigner)
	} else {
		app.logger.Warn("google login disabled, CLIENT_ID, CLIENT_SECRET and REDIRECT_URI are not all set")
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.accessVerifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.ClientService = app.clientService
	router.GoogleService = app.googleService // nil when google login is disabled
	router.Cookies = httpx.CookieConfig{Secure: app.cfg.CookieSecure}
	router.AccessTTL = app.cfg.AccessTokenExpiry
	router.RefreshTTL = app.cfg.RefreshTokenExpiry
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
