package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payzoll-audit/config"
	httpHandler "payzoll-audit/internal/adapter/http/handler"
	"payzoll-audit/internal/adapter/http/middleware"
	redisStorage "payzoll-audit/internal/adapter/storage/redis"
	"payzoll-audit/internal/app"
	"payzoll-audit/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("PZA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting PayZoll Audit")

	ctx := context.Background()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize audit index manager")
	}
	defer a.Close()

	deps := httpHandler.RouterDeps{
		AuditSvc:         a.Audit,
		PointerSvc:       a.PointerSvc,
		TokenSvc:         a.Tokens,
		IdempotencyCache: a.Idempotency,
		IdempotencyTTL:   cfg.Audit.IdempotencyTTL,
		HealthCheckers:   a.HealthCheckers,
		Logger:           log,
	}
	if a.Redis != nil && cfg.RateLimit.Enabled {
		deps.RateLimitStore = redisStorage.NewRateLimitStore(a.Redis)
		deps.RateLimitRules = middleware.DefaultRateLimitRules(cfg.RateLimit.Writes, cfg.RateLimit.Reads)
	} else if cfg.RateLimit.Enabled {
		log.Warn().Msg("Rate limiting needs redis.enabled, requests are not limited")
	}

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(deps)

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
