package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/blogware/sessiond/internal/auth/http"
	"github.com/blogware/sessiond/internal/auth/revocation"
	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/blogware/sessiond/internal/auth/store/drivers/sqlite"
	"github.com/blogware/sessiond/pkg/cryptox"
	"github.com/blogware/sessiond/pkg/jwtx"
	"github.com/blogware/sessiond/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the session credential service with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer *jwtx.Signer
	keys   *jwtx.KeySet
	index  *revocation.Index

	// Services
	issuerService       *service.IssuerService
	verifierService     *service.VerifierService
	rotationService     *service.RotationService
	revocationService   *service.RevocationService
	loginService        *service.LoginService
	registrationService *service.RegistrationService
	directory           *service.UserDirectory
	adminService        *service.AdminService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sessiond",
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

	signer, keys, err := InitKeys(app.cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize signing keys: %w", err)
	}
	app.signer = signer
	app.keys = keys
	app.index = revocation.NewIndex()

	app.initServices()

	// Seed the revocation index from the durable ledger before any traffic.
	if err := app.revocationService.SeedIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed revocation index: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("session service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down session service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("session service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.issuerService = service.NewIssuerService(
		app.signer,
		app.db,
		app.index,
		app.cfg.Issuer,
		app.cfg.Audience,
		app.cfg.AccessTTL,
		app.cfg.RefreshTTL,
	)

	app.verifierService = service.NewVerifierService(
		jwtx.NewVerifierRS256(app.keys),
		app.index,
		app.cfg.Issuer,
		app.cfg.Audience,
	)

	app.directory = service.NewUserDirectory(app.db)
	app.revocationService = service.NewRevocationService(app.db, app.index)
	app.rotationService = service.NewRotationService(
		app.verifierService,
		app.issuerService,
		app.db,
		app.index,
		app.directory,
	)
	app.loginService = service.NewLoginService(app.directory, app.issuerService)
	app.registrationService = service.NewRegistrationService(app.db)
	app.adminService = service.NewAdminService(app.db)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.VerifierService = app.verifierService
	router.LoginService = app.loginService
	router.RegistrationService = app.registrationService
	router.RotationService = app.rotationService
	router.RevocationService = app.revocationService
	router.Directory = app.directory
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
