// Package main is the entry point for the PostBot API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/postbot/backend/internal/config"
	"github.com/pkordes/postbot/backend/internal/handler"
	"github.com/pkordes/postbot/backend/internal/middleware"
	"github.com/pkordes/postbot/backend/internal/repo"
	"github.com/pkordes/postbot/backend/internal/service"
	"github.com/pkordes/postbot/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	slots, closeStore, err := openSlotStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("storage ready", "backend", cfg.StorageBackend)

	// --- Services ---------------------------------------------------------
	store := repo.NewCampaignStore(slots)
	opts := service.Options{
		Effect:  service.SimulatedEffect{Delay: cfg.SubmitDelay},
		Timeout: cfg.SubmitTimeout,
		Logger:  logger,
	}
	forms := service.NewFormService(store, opts)
	results := service.NewResultsService(store, forms, opts)
	export := service.NewExportService(results)

	// Idle sessions are dropped in the background until shutdown.
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	janitorDone := make(chan struct{})
	go func() {
		defer close(janitorDone)
		service.RunJanitor(janitorCtx, forms, results, cfg.SessionTTL, cfg.SessionSweepInterval, logger)
	}()

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.Handler())

	srvHandler := handler.NewServer(forms, results, export, logger)
	r.Mount("/", srvHandler.Routes(middleware.NewRateLimitHandler(cfg.RateLimitRPS, cfg.RateLimitBurst)))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout must outlast the submission timeout so a slow effect
	// still gets its 504 body written.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.SubmitTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	stopJanitor()
	<-janitorDone

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSlotStore builds the slot store for the configured backend. The
// returned func releases its connections.
func openSlotStore(ctx context.Context, cfg config.Config) (repo.SlotStore, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := repo.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisSlotStore(client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		// pgxpool.New does not open connections immediately; Ping does.
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		// goose needs a database/sql handle; borrow one from the pool.
		sqlDB := stdlib.OpenDBFromPool(pool)
		err = migrations.Up(ctx, sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo.NewPostgresSlotStore(pool), pool.Close, nil

	default:
		return repo.NewMemorySlotStore(), func() {}, nil
	}
}
