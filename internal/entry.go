// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/arsenal/internal/api"
	"github.com/starford/arsenal/internal/catalog"
	"github.com/starford/arsenal/internal/catalogservice"
	"github.com/starford/arsenal/internal/index"
	"github.com/starford/arsenal/internal/mcpserver"
	"github.com/starford/arsenal/internal/sse"
	"github.com/starford/arsenal/internal/web"
)

const failureThrottle = 2 * time.Second

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// openCatalog loads the catalog and its search index. A failed first load is
// not fatal: the empty catalog is served and the failure is shown in the page.
func openCatalog(ctx context.Context, cfg *Config, logger *slog.Logger) (*catalog.Store, *catalogservice.Service, func(), error) {
	store := catalog.NewStore(cfg.Catalog.Source(), logger)
	snap, loadErr := store.Load(ctx)

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}

	svc := catalogservice.NewService(store, db, logger)
	if loadErr == nil {
		if err := svc.SyncIndex(snap); err != nil {
			logger.Warn("initial index sync failed", slog.String("error", err.Error()))
		}
	}
	return store, svc, func() { _ = db.Close() }, nil
}

func healthHandler(ready func() bool) (live, readyH http.HandlerFunc) {
	live = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
	readyH = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"loading"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
	return live, readyH
}

// reloadHandler keeps the index and connected browsers in step with the store.
func reloadHandler(svc *catalogservice.Service, broker *sse.Broker, logger *slog.Logger) catalog.ReloadCallback {
	return func(snap *catalog.Snapshot, err error) {
		if err != nil {
			broker.PublishReload(sse.ReloadEvent{Error: err.Error()})
			return
		}
		if syncErr := svc.SyncIndex(snap); syncErr != nil {
			logger.Warn("index sync failed", slog.String("error", syncErr.Error()))
		}
		counts := make(map[string]int)
		for sec, n := range snap.Catalog.Counts() {
			counts[string(sec)] = n
		}
		broker.PublishReload(sse.ReloadEvent{Version: snap.Version, Counts: counts})
	}
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(os.Stdout, cfg.App.LogLevel)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("catalog", cfg.Catalog.Source().String()),
		slog.Bool("watch", cfg.Catalog.Watch),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, svc, closeIndex, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeIndex()

	// SSE broker.
	broker := sse.NewBroker(failureThrottle)
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, cfg.App.HTTP.CORSOrigins)
	browser := web.New(store, web.Options{
		Title:  cfg.UI.Title,
		Locale: cfg.UI.Locale,
		// The event stream sits behind the API token.
		LiveReload: !cfg.Auth.AuthEnabled(),
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	live, ready := healthHandler(store.Ready)
	r.Get("/health/live", live)
	r.Get("/health/ready", ready)

	browser.Routes(r)
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Catalog.Watch && store.Source().IsFile() {
		g.Go(func() error {
			if err := catalog.Watch(gCtx, store, logger, reloadHandler(svc, broker, logger)); err != nil {
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Shut down on a signal or when another goroutine fails.
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the catalog over the MCP stdio transport. Stdout carries the
// protocol, so logs go to stderr.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger := newLogger(os.Stderr, cfg.App.LogLevel)

	_, svc, closeIndex, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeIndex()

	logger.Info("Starting MCP server", slog.String("version", app.version))
	if err := mcpserver.New(svc, app.version).ServeStdio(); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
