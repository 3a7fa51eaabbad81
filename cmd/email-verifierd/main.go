package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/doziebest/email-verifier-application/internal/verify/common/clock"
	"github.com/doziebest/email-verifier-application/internal/verify/common/log"
	"github.com/doziebest/email-verifier-application/internal/verify/config"
	"github.com/doziebest/email-verifier-application/internal/verify/gateways/httpapi"
	"github.com/doziebest/email-verifier-application/internal/verify/setup"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "email-verifierd"

	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

// Application holds the wired components of the verification server.
type Application struct {
	config *config.AppConfig
	deps   *setup.Dependencies
	server *http.Server

	ready chan struct{}
	addr  net.Addr
}

func main() {
	// .env is optional; real environment variables win.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	err = log.Configure(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"app":        appName,
		"version":    version,
		"env":        cfg.Env,
		"log_level":  cfg.LogLevel,
		"port":       cfg.Port,
		"bulk_limit": cfg.BulkLimit,
	}, "Starting email verification server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "Shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "Server failed")
	}

	log.Info(nil, "Email verification server stopped gracefully")
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	deps, err := setup.SetupDependencies(cfg, clock.RealClock{}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Options{
		Verifier:    deps.Verifier,
		Logger:      logger.With(map[string]any{"component": "httpapi"}),
		Registry:    deps.Registry,
		CORSOrigins: cfg.CORSOrigins,
	})

	return &Application{
		config: cfg,
		deps:   deps,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           router,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
		ready: make(chan struct{}),
	}, nil
}

// Address returns the bound listen address once Run has started listening,
// or nil if Run failed to listen.
func (app *Application) Address() net.Addr {
	<-app.ready
	return app.addr
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the server down and releases the disposable store.
func (app *Application) Run(ctx context.Context) error {
	defer func() {
		if err := app.deps.Close(); err != nil {
			log.Warn(map[string]any{"error": err.Error()}, "Error closing disposable store")
		}
	}()

	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		close(app.ready)
		return fmt.Errorf("failed to listen on %s: %w", app.server.Addr, err)
	}
	app.addr = ln.Addr()
	close(app.ready)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.server.Serve(ln)
	}()

	log.Info(map[string]any{"address": app.addr.String()}, "HTTP server started")

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info(nil, "Shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		log.Warn(map[string]any{"timeout": defaultShutdownTimeout.String()}, "Shutdown timeout exceeded")
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(nil, "Graceful shutdown completed")
	return nil
}
