// Package app assembles the audit index manager and its adapters from
// configuration. Both the HTTP server and auditctl build on it.
package app

import (
	"context"
	"fmt"

	"payzoll-audit/config"
	"payzoll-audit/internal/adapter/backend"
	httpHandler "payzoll-audit/internal/adapter/http/handler"
	"payzoll-audit/internal/adapter/storage/memory"
	pgStorage "payzoll-audit/internal/adapter/storage/postgres"
	redisStorage "payzoll-audit/internal/adapter/storage/redis"
	"payzoll-audit/internal/adapter/walrus"
	"payzoll-audit/internal/core/ports"
	"payzoll-audit/internal/service"
	"payzoll-audit/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// App is the wired object graph.
type App struct {
	Blobs   ports.BlobStore
	Pointer *service.TieredPointer
	Audit   *service.AuditIndexService

	// Optional pieces; nil when the backing dependency is disabled.
	Tokens     ports.TokenService
	PointerSvc ports.PointerService
	Redis      *goredis.Client
	DB         *pgxpool.Pool

	// Idempotency prefers Redis and falls back to PostgreSQL.
	Idempotency ports.IdempotencyCache

	HealthCheckers []ports.HealthChecker

	closers []func()
}

// Build connects to every enabled dependency and wires the manager. On error
// anything already opened is closed.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{}
	ready := false
	defer func() {
		if !ready {
			a.Close()
		}
	}()

	if cfg.JWT.Secret != "" {
		a.Tokens = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	}

	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.Redis = rdb
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.HealthCheckers = append(a.HealthCheckers, redisStorage.NewHealthCheck(rdb))
		a.Idempotency = redisStorage.NewIdempotencyCache(rdb)
	}

	var pointerRepo ports.PointerRepository
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		a.DB = pool
		a.closers = append(a.closers, pool.Close)
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			return nil, fmt.Errorf("migrating postgres: %w", err)
		}
		a.HealthCheckers = append(a.HealthCheckers, pgStorage.NewHealthCheck(pool))
		pointerRepo = pgStorage.NewPointerRepo(pool)
		a.PointerSvc = service.NewPointerService(pointerRepo, logger.Component(log, "pointer"))

		if a.Idempotency == nil {
			keys := pgStorage.NewIdempotencyRepo(pool)
			if n, err := keys.PurgeExpired(ctx); err != nil {
				log.Warn().Err(err).Msg("purging expired idempotency keys failed")
			} else if n > 0 {
				log.Info().Int64("purged", n).Msg("expired idempotency keys removed")
			}
			a.Idempotency = keys
		}
	}

	a.Blobs = newBlobStore(cfg.Walrus, log)

	primary, err := newPrimaryTier(cfg, a.Tokens, pointerRepo, log)
	if err != nil {
		return nil, err
	}
	a.Pointer = service.NewTieredPointer(primary, newFallbackTier(cfg.Pointer, a.Redis), logger.Component(log, "pointer"))

	a.Audit = service.NewAuditIndexService(a.Blobs, a.Pointer, logger.Component(log, "audit"),
		service.WithEpochs(cfg.Walrus.RecordEpochs, cfg.Walrus.IndexEpochs),
		service.WithMaxPointerAttempts(cfg.Audit.MaxPointerAttempts),
		service.WithFetchConcurrency(cfg.Audit.FetchConcurrency),
		service.WithDefaultChain(cfg.Audit.DefaultChain),
		service.WithMetrics(httpHandler.AuditMetrics{}),
	)

	log.Info().
		Str("walrus_mode", cfg.Walrus.Mode).
		Str("primary_tier", tierName(primary)).
		Str("fallback_tier", cfg.Pointer.Fallback).
		Bool("auth", a.Tokens != nil).
		Msg("audit index manager ready")

	ready = true
	return a, nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newBlobStore(cfg config.WalrusConfig, log zerolog.Logger) ports.BlobStore {
	if cfg.Mode == "memory" {
		log.Warn().Msg("walrus.mode=memory: blobs are not persisted")
		return memory.NewBlobStore()
	}
	return walrus.NewClient(cfg.PublisherURL, cfg.AggregatorURL, logger.Component(log, "walrus"),
		walrus.WithTimeout(cfg.RequestTimeout),
		walrus.WithPublisherRate(cfg.MaxRPS),
	)
}

// newPrimaryTier prefers the REST backend, then the local database. nil means
// the fallback is the only tier.
func newPrimaryTier(cfg *config.Config, tokens ports.TokenService, repo ports.PointerRepository, log zerolog.Logger) (ports.PointerStore, error) {
	if cfg.Backend.BaseURL != "" {
		opts := []backend.Option{backend.WithTimeout(cfg.Backend.RequestTimeout)}
		switch {
		case cfg.Backend.Token != "":
			opts = append(opts, backend.WithStaticToken(cfg.Backend.Token))
		case tokens != nil:
			opts = append(opts, backend.WithServiceToken(tokens, cfg.JWT.Subject))
		default:
			return nil, fmt.Errorf("backend.base_url requires backend.token or jwt.secret")
		}
		return backend.NewPointerClient(cfg.Backend.BaseURL, logger.Component(log, "backend"), opts...), nil
	}
	if repo != nil {
		return service.NewRepoPointerStore(repo), nil
	}
	return nil, nil
}

func newFallbackTier(cfg config.PointerConfig, rdb *goredis.Client) ports.PointerStore {
	switch cfg.Fallback {
	case "redis":
		return redisStorage.NewPointerStore(rdb, cfg.Key)
	case "memory":
		return memory.NewPointerStore("memory")
	default:
		return memory.NoopPointerStore{}
	}
}

func tierName(s ports.PointerStore) string {
	if s == nil {
		return "none"
	}
	return s.Name()
}
