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
	"go.uber.org/zap"

	"github.com/stadtlab/datenkarte/internal/config"
	"github.com/stadtlab/datenkarte/internal/db"
	dbValkey "github.com/stadtlab/datenkarte/internal/db/valkey"
	logpkg "github.com/stadtlab/datenkarte/internal/logger"
	"github.com/stadtlab/datenkarte/internal/metrics"
	datasetrepo "github.com/stadtlab/datenkarte/internal/repository/dataset"
	workspacerepo "github.com/stadtlab/datenkarte/internal/repository/workspace"
	chiTransport "github.com/stadtlab/datenkarte/internal/transport/chi"
	cataloguc "github.com/stadtlab/datenkarte/internal/usecase/catalog"
	healthuc "github.com/stadtlab/datenkarte/internal/usecase/health"
	searchuc "github.com/stadtlab/datenkarte/internal/usecase/search"
	workspaceuc "github.com/stadtlab/datenkarte/internal/usecase/workspace"
	"github.com/stadtlab/datenkarte/internal/version"
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

	logger.Info("Starting datenkarte API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Int("dataset_sources", len(cfg.Datasets.Sources)),
	)

	// Workspace store is optional; without it the API serves search only.
	// Valkey and Redis both speak the same hash commands, so one rueidis
	// store covers both drivers.
	var store db.Store
	if cfg.WorkspacesEnabled() {
		store, err = dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")
	} else {
		logger.Warn("No database configured, workspaces disabled")
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Load the dataset corpus into memory
	sources := make([]datasetrepo.Source, len(cfg.Datasets.Sources))
	for i, src := range cfg.Datasets.Sources {
		sources[i] = datasetrepo.Source{
			ID:       src.ID,
			Title:    src.Title,
			Category: src.Category,
			File:     src.File,
		}
	}

	datasets, err := datasetrepo.Load(cfg.Datasets.DataDir, sources, logger)
	if err != nil {
		logger.Fatal("Failed to load datasets", zap.Error(err))
	}

	corpus, err := datasetrepo.New(datasets)
	if err != nil {
		logger.Fatal("Failed to build dataset corpus", zap.Error(err))
	}

	stats := corpus.Stats()
	metrics.DatasetsLoaded.Set(float64(stats.TotalDatasets))
	metrics.FeaturesLoaded.Set(float64(stats.TotalFeatures))
	logger.Info("Dataset corpus loaded",
		zap.Int("datasets", stats.TotalDatasets),
		zap.Int("features", stats.TotalFeatures),
	)

	// Create use case services
	searchSvc := searchuc.New(corpus)

	var wsSvc *workspaceuc.Service
	var wsCounter cataloguc.WorkspaceCounter
	var dbPinger healthuc.DBPinger
	if store != nil {
		wsRepo := workspacerepo.New(store)
		wsSvc = workspaceuc.New(wsRepo)
		wsCounter = wsRepo
		dbPinger = store
	}

	catalogSvc := cataloguc.New(corpus, wsCounter)
	healthSvc := healthuc.New(dbPinger, corpus)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, catalogSvc, wsSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
