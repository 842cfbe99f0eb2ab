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

	"github.com/raywlfun/WeaviateDBCluster/internal/config"
	dbValkey "github.com/raywlfun/WeaviateDBCluster/internal/db/valkey"
	logpkg "github.com/raywlfun/WeaviateDBCluster/internal/logger"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
	sessionrepo "github.com/raywlfun/WeaviateDBCluster/internal/repository/session"
	chiTransport "github.com/raywlfun/WeaviateDBCluster/internal/transport/chi"
	"github.com/raywlfun/WeaviateDBCluster/internal/transport/weaviate"
	browseuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/browse"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
	configuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/colconfig"
	healthuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/health"
	ingestuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/ingest"
	objectuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/object"
	rbacuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/rbac"
	searchuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/search"
	sessionuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/session"
	tenantuc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/tenant"
	"github.com/raywlfun/WeaviateDBCluster/internal/version"
)

// sessionStore is what the session and health services need from a store.
type sessionStore interface {
	sessionuc.Store
	healthuc.SessionPinger
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger("wvadmin", env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wvadmin API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("weaviate_endpoint", cfg.Weaviate.Endpoint),
		zap.String("session_driver", cfg.Session.Driver),
	)

	metrics.RegisterWeaviateMetrics()

	cluster, err := weaviate.NewClient(&weaviate.Config{
		Endpoint: cfg.Weaviate.Endpoint,
		APIKey:   cfg.Weaviate.APIKey,
		Timeout:  time.Duration(cfg.Weaviate.TimeoutSec) * time.Second,
		Headers:  cfg.Weaviate.Headers,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("Failed to create Weaviate client", zap.Error(err))
	}

	ctx := context.Background()
	sessionTTL := time.Duration(cfg.Session.TTLSec) * time.Second

	var sessions sessionStore
	switch cfg.Session.Driver {
	case config.SessionDriverValkey:
		store, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Session.Addrs,
			Password: cfg.Session.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create session store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Session.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Session store not ready", zap.Error(err))
		}
		logger.Info("Connected to session store", zap.Strings("addrs", cfg.Session.Addrs))
		sessions = sessionrepo.New(store, sessionTTL)
	default:
		sessions = sessionrepo.NewMemory(sessionTTL)
	}

	// The admin API starts even when the cluster is down; /health reports it.
	if err := cluster.Ready(ctx); err != nil {
		logger.Warn("Weaviate not ready", zap.Error(err))
	}

	// Create use case services
	configSvc := configuc.New(cluster, cluster)
	objectSvc := objectuc.New(cluster, cluster)
	tenantSvc := tenantuc.New(cluster)
	sessionSvc := sessionuc.New(sessions)
	searchSvc := searchuc.New(cluster)
	browseSvc := browseuc.New(cluster, cluster)
	ingestSvc := ingestuc.New(cluster, cluster, cfg.Weaviate.Headers, cfg.Ingest.ReplicationFactor,
		ingestuc.WithBatchSize(cfg.Ingest.BatchSize))
	rbacSvc := rbacuc.New(cluster)
	clusterSvc := clusteruc.New(cluster)
	healthSvc := healthuc.New(cluster, sessions)

	server := chiTransport.NewServer(
		configSvc, objectSvc, tenantSvc, sessionSvc,
		searchSvc, browseSvc, ingestSvc, rbacSvc, clusterSvc,
		healthSvc, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

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
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", chi.RouteContext(r.Context()).RoutePattern()),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("session_id", ww.Header().Get(chiTransport.SessionHeader)),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
