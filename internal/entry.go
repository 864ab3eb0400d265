// Package internal provides the application wiring: logging, the HTTP
// server run loop and the MCP stdio server.
package internal

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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/illien/illien/internal/api"
	"github.com/illien/illien/internal/backend"
	"github.com/illien/illien/internal/journal"
	"github.com/illien/illien/internal/mcpserver"
	"github.com/illien/illien/internal/models"
	"github.com/illien/illien/internal/settings"
	"github.com/illien/illien/internal/sse"
	"github.com/illien/illien/internal/watch"
)

var errConfigRequired = errors.New("config is required")

// NewBackend builds the command service for cfg.
func NewBackend(cfg *Config, opts ...backend.Option) *backend.Service {
	return backend.NewService(settings.NewStore(cfg.Settings.ConfigRoot), journal.NewFS(), opts...)
}

// NewHTTPHandler builds the full HTTP handler: health checks plus the API
// mounted under /api.
func NewHTTPHandler(cfg *Config, svc *backend.Service, events http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	health := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
	r.Get("/health/live", health)
	r.Get("/health/ready", health)

	r.Mount("/api", api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, events))
	return r
}

// Run starts the HTTP API, the SSE broker and the journal watcher.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger, closeLog := newLogger(cfg.App, app.logOutput)
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("settings_path", settings.NewStore(cfg.Settings.ConfigRoot).ResolvePath()),
		slog.Bool("watch_enabled", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(cfg.Watch.Throttle)
	retarget := make(chan string, 4)

	svc := NewBackend(cfg, backend.WithSettingsListener(func(st models.Settings) {
		broker.PublishSettings(st)
		if !cfg.Watch.Enabled || st.JournalDirectory == nil {
			return
		}
		select {
		case retarget <- *st.JournalDirectory:
		default:
			logger.Warn("watcher retarget dropped", slog.String("dir", *st.JournalDirectory))
		}
	}))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           NewHTTPHandler(cfg, svc, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gCtx := errgroup.WithContext(runCtx)

	if cfg.Watch.Enabled {
		initial := ""
		if d := svc.JournalDirectory(gCtx); d != nil {
			initial = *d
		}
		g.Go(func() error {
			return watch.Run(gCtx, initial, retarget, logger, func(kind, filename string, entryType models.EntryType) {
				broker.PublishEntryEvent(kind, filename, entryType)
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// SSE streams only end when the broker closes them.
		broker.Close()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		cancel()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the journal tools over stdio until the client disconnects.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	if app.logOutput == nil {
		app.logOutput = os.Stderr
	}
	logger, closeLog := newLogger(app.config.App, app.logOutput)
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("MCP server starting", slog.String("version", app.version))
	srv := mcpserver.New(NewBackend(app.config), app.version)
	if err := srv.ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
