package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/studx-cloud/listdex/internal/config"
	"github.com/studx-cloud/listdex/internal/db"
	"github.com/studx-cloud/listdex/internal/db/postgres"
	dbRedis "github.com/studx-cloud/listdex/internal/db/redis"
	"github.com/studx-cloud/listdex/internal/domain/listing"
	logpkg "github.com/studx-cloud/listdex/internal/logger"
	"github.com/studx-cloud/listdex/internal/metrics"
	sponsorrepo "github.com/studx-cloud/listdex/internal/repository/sponsorship"
	"github.com/studx-cloud/listdex/internal/repository/tables"
	chiTransport "github.com/studx-cloud/listdex/internal/transport/chi"
	feeduc "github.com/studx-cloud/listdex/internal/usecase/feed"
	healthuc "github.com/studx-cloud/listdex/internal/usecase/health"
	searchuc "github.com/studx-cloud/listdex/internal/usecase/search"
	"github.com/studx-cloud/listdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting listdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	store, err := postgres.NewStore(postgres.Config{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Sponsorship lookup, optionally wrapped in the Redis cache.
	var sponsorships sponsorrepo.Lister = sponsorrepo.New(store)
	var cache db.Cache
	if cfg.Cache.Enabled {
		cacheStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cacheStore.Close()

		cache = cacheStore
		sponsorships = sponsorrepo.NewCached(
			sponsorships, cacheStore,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.SponsorshipCacheTotal, logger,
		)
		logger.Info("Sponsorship cache enabled", zap.Int("ttl_sec", cfg.Cache.TTLSec))
	}

	adapterTimeout := time.Duration(cfg.Search.AdapterTimeoutSec) * time.Second

	// One adapter per listing table, shared by search and feed.
	searchAdapters := make([]searchuc.Adapter, 0, len(listing.Types()))
	for _, a := range tables.All(store) {
		searchAdapters = append(searchAdapters, a)
	}
	searchSvc := searchuc.New(searchAdapters, sponsorships).
		WithAdapterTimeout(adapterTimeout)

	// The browse feed covers products, notes, and rooms; rentals only
	// appear through search.
	feedTypes := []listing.SourceType{listing.TypeProduct, listing.TypeNote, listing.TypeRoom}
	feedAdapters := make([]feeduc.Adapter, 0, len(feedTypes))
	for _, t := range feedTypes {
		a, err := tables.New(store, t)
		if err != nil {
			logger.Fatal("Failed to create feed adapter", zap.Error(err))
		}
		feedAdapters = append(feedAdapters, a)
	}
	feedSvc := feeduc.New(feedAdapters).
		WithPagination(cfg.Search.FeedPageSize, cfg.Search.MaxPageSize).
		WithAdapterTimeout(adapterTimeout)

	var cachePinger healthuc.CachePinger
	if cache != nil {
		cachePinger = cache
	}
	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(searchSvc, feedSvc, healthSvc, logger).
		WithPageSizes(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"code":    "internal_error",
						"error":   "internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
