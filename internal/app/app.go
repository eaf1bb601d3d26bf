package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/config"
	apierrors "github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/errors"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/infrastructure"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/metric"
	custommw "github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/middleware"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/services"
	handlers "github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/internal/transport/http"
	"github.com/aswinkumar2001/Export-File-To-Import-File-Conversion/pkg/contracts"
)

const (
	// AppName is the service name reported in logs and the startup banner
	AppName = "meterconv"

	// VERSION is the current application version
	VERSION = contracts.Version
)

// Application holds every component of the conversion service and wires
// them together.
type Application struct {
	Config *config.Config
	Paths  *config.Paths
	Router *chi.Mux
	Server *http.Server

	ConvertService *services.ConvertService
	HealthService  *services.HealthService
	Metrics        *metric.Metrics

	Logger *slog.Logger
}

// NewApplication creates a new application instance from environment and
// file configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig creates a new application instance from an
// already validated configuration. config.Load performs validation;
// callers passing a hand-built config are expected to supply sane values.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	// Hand the resolved locations to everything downstream so the service
	// behaves the same no matter which directory it was started from.
	cfg.Paths = config.PathsConfig{
		ExecutableDir: paths.ExecutableDir,
		DataDir:       paths.DataDir,
		LogsDir:       paths.LogsDir,
	}

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		Metrics: metric.New(),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.ConvertService = services.NewConvertService(a.Config, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(VERSION, contracts.BuildTime, a.Config.Paths, a.Logger)
}

// setupRouter configures the HTTP router with all middleware and routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	// Core middleware, order matters: request IDs must exist before anything
	// that logs
	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)

	r.Group(func(r chi.Router) {
		r.Use(custommw.StructuredLogger(a.Logger))
		r.Use(custommw.Recoverer(a.Logger))
		r.Use(custommw.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(custommw.CORS(a.getCORSConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			rateLimiter := custommw.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			)
			r.Use(rateLimiter.Handler)
		}

		a.setupAPIRoutes(r, errorHandler)
	})

	// Prometheus scrapes bypass request logging and rate limiting
	r.Handle("/metrics", a.Metrics.Handler())

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

// setupAPIRoutes configures the JSON API under /api
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *apierrors.ErrorHandler) {
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	convertHandler := handlers.NewConvertHandler(
		a.ConvertService,
		a.Config.Convert.MaxUploadBytes,
		a.Logger,
		errorHandler,
	)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)

		// Lightweight endpoints share the server read timeout
		r.Group(func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.ReadTimeout, a.Logger))

			r.Get("/health", healthHandler.HealthCheck)
			r.Get("/health/ready", healthHandler.ReadinessCheck)
			r.Get("/health/live", healthHandler.LivenessCheck)
			r.Get("/version", healthHandler.Version)
			r.Get("/formats", convertHandler.Formats)
		})

		// Conversions parse whole workbooks and get a longer timeout
		r.Group(func(r chi.Router) {
			r.Use(custommw.Timeout(a.Config.Server.ConvertTimeout, a.Logger))

			r.Mount("/convert", convertHandler.Routes())
		})
	})
}

// getCORSConfig builds the CORS policy from the security configuration
func (a *Application) getCORSConfig() custommw.CORSConfig {
	return custommw.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Conversion-Warnings"},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the HTTP server. The server runs in a background goroutine;
// a listen failure cancels the supplied context so the caller can unwind.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("name", AppName),
		slog.String("version", VERSION),
		slog.Int("port", a.Config.Server.Port),
		slog.String("log_level", a.Config.Logging.Level))

	build := contracts.GetVersionInfo()
	a.Logger.InfoContext(ctx, "build information",
		slog.String("build_id", build.BuildID),
		slog.String("build_time", build.BuildTime),
		slog.String("go_version", build.GoVersion),
		slog.String("platform", build.Platform))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	if err := a.performStartupCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "startup check warnings", slog.String("warnings", err.Error()))
	}

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))

	return nil
}

// performStartupCheck verifies the working directories are writable.
// Failures are reported as warnings, not fatal errors: the service can
// still convert uploads held entirely in memory.
func (a *Application) performStartupCheck(ctx context.Context) error {
	directories := map[string]string{
		"data":    a.Paths.DataDir,
		"uploads": a.Paths.UploadsDir,
		"reports": a.Paths.ReportsDir,
		"logs":    a.Paths.LogsDir,
	}

	var warnings []string
	for name, dir := range directories {
		probe := filepath.Join(dir, ".write_test")
		if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s directory not writable: %s", name, dir))
			continue
		}
		os.Remove(probe)
	}

	if len(warnings) > 0 {
		return fmt.Errorf("startup check warnings: %s", strings.Join(warnings, "; "))
	}

	a.Logger.InfoContext(ctx, "startup check passed")
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")

	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	return nil
}

// Run runs the application until interrupted or the server fails
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
		a.Logger.InfoContext(ctx, "server stopped")
	}

	// Shut down on a fresh context: the run context is already cancelled
	// when the server itself failed.
	return a.Stop(context.Background())
}
