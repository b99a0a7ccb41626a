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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gtmhub/searchd/internal/config"
	"github.com/gtmhub/searchd/internal/db"
	dbRedis "github.com/gtmhub/searchd/internal/db/redis"
	"github.com/gtmhub/searchd/internal/domain"
	logpkg "github.com/gtmhub/searchd/internal/logger"
	"github.com/gtmhub/searchd/internal/metrics"
	contentrepo "github.com/gtmhub/searchd/internal/repository/content"
	"github.com/gtmhub/searchd/internal/repository/queryvec"
	"github.com/gtmhub/searchd/internal/repository/respcache"
	chiTransport "github.com/gtmhub/searchd/internal/transport/chi"
	"github.com/gtmhub/searchd/internal/transport/cms"
	openaiT "github.com/gtmhub/searchd/internal/transport/openai"
	answeruc "github.com/gtmhub/searchd/internal/usecase/answer"
	classifyuc "github.com/gtmhub/searchd/internal/usecase/classify"
	healthuc "github.com/gtmhub/searchd/internal/usecase/health"
	retrieveuc "github.com/gtmhub/searchd/internal/usecase/retrieve"
	searchuc "github.com/gtmhub/searchd/internal/usecase/search"
	"github.com/gtmhub/searchd/internal/version"
)

func main() {
	// .env is optional, for local runs
	_ = godotenv.Load()

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

	logger.Info("Starting searchd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cms_base_url", cfg.CMS.BaseURL),
		zap.Strings("redis_addrs", cfg.Redis.Addrs),
	)

	// Cache store is optional: without it every request runs uncached.
	var store db.Store
	if len(cfg.Redis.Addrs) > 0 {
		redisStore, storeErr := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
		})
		if storeErr != nil {
			logger.Fatal("Failed to create cache store", zap.Error(storeErr))
		}
		defer redisStore.Close()

		ctx := context.Background()
		if err := redisStore.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store")
		store = redisStore
	} else {
		logger.Warn("No redis addrs configured, caching disabled")
	}

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// CMS query client, the only hard dependency of the pipeline.
	cmsClient := cms.NewClient(&cms.Config{
		BaseURL: cfg.CMS.BaseURL,
		Token:   cfg.CMS.Token,
		Timeout: time.Duration(cfg.CMS.TimeoutSec) * time.Second,
		Logger:  logger,
	})

	// Embedding provider is optional: without it scoring is keyword-only.
	// Pass nil interface (not typed nil pointer!) when unconfigured.
	var embedder domain.Embedder
	var embeddingChecker healthuc.ProviderChecker
	if cfg.Embedding.APIKey != "" {
		e := openaiT.NewEmbedder(&openaiT.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
			Logger:     logger,
		})
		embedder = e
		embeddingChecker = e
		logger.Info("Embedding provider created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	} else {
		logger.Warn("No embedding API key configured, semantic scoring disabled")
	}

	// Generators: classifier on a small fast model, synthesis on a larger one.
	var classifierGen, synthesisGen domain.Generator
	if cfg.LLM.APIKey != "" {
		classifierGen = openaiT.NewGenerator(&openaiT.GeneratorConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.ClassifierModel,
			Op:      "classify",
			Timeout: time.Duration(cfg.LLM.ClassifyTimeoutSec) * time.Second,
			Logger:  logger,
		})
		synthesisGen = openaiT.NewGenerator(&openaiT.GeneratorConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.SynthesisModel,
			Op:      "synthesize",
			Timeout: time.Duration(cfg.LLM.SynthesisTimeoutSec) * time.Second,
			Logger:  logger,
		})
	} else {
		logger.Warn("No LLM API key configured, using heuristic classification, no AI answers")
	}

	// Repositories
	contentRepo := contentrepo.New(cmsClient)
	vectorizer := queryvec.New(
		embedder, store,
		time.Duration(cfg.Search.EmbeddingCacheTTLSec)*time.Second,
		metrics.EmbeddingCacheTotal, logger,
	)

	// Use case services
	retrieveSvc := retrieveuc.New(contentRepo, retrieveuc.Thresholds{
		CoE:        cfg.Search.MinScoreCoE,
		Enablement: cfg.Search.MinScoreEnablement,
		Content:    cfg.Search.MinScoreContent,
	})
	classifySvc := classifyuc.New(classifierGen, cfg.LLM.ClassifyMaxTokens)

	var synthesizer searchuc.Synthesizer
	if synthesisGen != nil {
		synthesizer = answeruc.New(synthesisGen, cfg.LLM.SynthesisMaxTokens, cfg.Search.AnswerContextSize)
	}

	searchSvc := searchuc.New(
		retrieveSvc, classifySvc, vectorizer, synthesizer,
		cfg.Search.DefaultLimit, cfg.Search.MaxLimit,
	)
	if store != nil {
		searchSvc = searchSvc.WithCache(respcache.New(
			store,
			time.Duration(cfg.Search.ResponseCacheTTLSec)*time.Second,
			metrics.SearchCacheTotal, logger,
		))
	}

	// Health service. Cache and embedding checks are optional
	var cachePinger healthuc.Pinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(cmsClient, cachePinger, embeddingChecker)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

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
						"error": "internal error",
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

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
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
