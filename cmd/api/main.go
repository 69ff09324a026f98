package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"portalapi/internal/config"
	"portalapi/internal/drift"
	"portalapi/internal/httpx"
	"portalapi/internal/logging"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := drift.NewTracker(logger)

	var (
		pool       *pgxpool.Pool
		driftStore drift.Store
		background sync.WaitGroup
	)
	if cfg.DBDSN != "" {
		pool = mustOpenDB(ctx, cfg.DBDSN, logger)
		defer pool.Close()
		driftStore = drift.NewPostgresStore(pool)
		if cfg.DriftFlush > 0 {
			background.Add(1)
			go func() {
				defer background.Done()
				tracker.Run(ctx, driftStore, cfg.DriftFlush)
			}()
		}
	} else {
		logger.Info("DB_DSN not set, drift gaps are kept in memory only")
	}

	h := newHandlers(cfg, logger, tracker, driftStore)

	var ready readiness
	if pool != nil {
		ready = pool.Ping
	}
	router := newRouter(h, ready)

	middleware := []func(http.Handler) http.Handler{
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware(logger),
		httpx.AccessLogMiddleware(logger),
		httpx.CORSMiddleware(cfg.CORSOrigins),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.RequestSizeLimitMiddleware(1 << 20),
	}
	if cfg.RateLimitRPS > 0 {
		limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, rateLimitBurst(cfg.RateLimitRPS))
		defer limiter.Close()
		middleware = append(middleware, limiter.Middleware)
	}
	handler := httpx.Chain(router, middleware...)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 2*cfg.ContentTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Addr),
			zap.String("env", cfg.Env),
			zap.String("content_api", cfg.ContentAPIURL),
			zap.Bool("mock", cfg.Mock()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("server error", zap.Error(err))
		}
		stop()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	background.Wait()
	logger.Info("server stopped")
}

// rateLimitBurst allows short bursts of twice the steady rate.
func rateLimitBurst(rps float64) int {
	if b := int(2 * rps); b > 1 {
		return b
	}
	return 1
}

func mustOpenDB(ctx context.Context, dsn string, logger *zap.Logger) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("cannot create db pool", zap.Error(err))
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		logger.Fatal("cannot ping database", zap.String("dsn", config.RedactDSN(dsn)), zap.Error(err))
	}
	logger.Info("database connection OK")
	return pool
}
