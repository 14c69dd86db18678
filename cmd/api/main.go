package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crucial707/loanapp/internal/auth"
	"github.com/crucial707/loanapp/internal/config"
	"github.com/crucial707/loanapp/internal/db"
	"github.com/crucial707/loanapp/internal/handlers"
	"github.com/crucial707/loanapp/internal/logging"
	"github.com/crucial707/loanapp/internal/middleware"
	"github.com/crucial707/loanapp/internal/predict"
	"github.com/crucial707/loanapp/internal/repo"
	"github.com/crucial707/loanapp/internal/scheduler"
	"github.com/crucial707/loanapp/internal/session"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("loanapp stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("starting", "config", cfg.String())

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		db.PoolOptions{MaxOpenConns: cfg.DBMaxOpenConns, MaxIdleConns: cfg.DBMaxIdleConns},
	)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()
	logger.Info("connected to database")

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	model, err := predict.LoadModel(cfg.ModelPath)
	if err != nil {
		return err
	}
	relay := predict.NewRelay(model)
	logger.Info("model loaded", "path", cfg.ModelPath, "version", model.Version)

	if cfg.ModelReloadCron != "" {
		c, err := scheduler.Run(cfg.ModelReloadCron, scheduler.ModelReloadJob(relay, cfg.ModelPath, logger))
		if err != nil {
			return err
		}
		defer c.Stop()
		logger.Info("model reload scheduled", "cron", cfg.ModelReloadCron)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(database, cfg, relay),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful Shutdown
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newRouter wires the page handlers and ops endpoints. Split from main for tests.
func newRouter(database *sql.DB, cfg config.Config, relay *predict.Relay) http.Handler {
	logger := slog.Default()
	secret := []byte(cfg.JWTSecret)

	authHandler := &handlers.AuthHandler{
		Gate:     auth.NewGate(repo.NewAccountRepo(database), secret),
		Sessions: session.NewStore(),
		Logger:   logger,
	}
	predictHandler := &handlers.PredictHandler{Relay: relay, Logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.TokenClaims(secret))
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Prometheus)
	r.Use(middleware.FormLimit(middleware.DefaultMaxFormBytes))

	// ==========================
	// Pages
	// ==========================
	r.Get("/", handlers.Home(logger))

	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/logout", authHandler.LogoutRedirect)

	r.Get("/predict", predictHandler.PredictForm)
	r.Post("/predict", predictHandler.Predict)

	// ==========================
	// Ops
	// ==========================
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.PingContext(ctx); err != nil {
			logger.Warn("readiness check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
