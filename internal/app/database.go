// Package app provides pricing store initialization and setup.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/repository"
)

// StoreComponents holds the pricing and audit stores and the connections
// behind them.
type StoreComponents struct {
	Pricing repository.PricingRepositoryInterface
	Audit   repository.AuditRepositoryInterface

	// CircuitBreakers guard the database-backed stores, keyed by health name.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
	// Checkers ping the underlying connections, keyed by health name.
	Checkers map[string]func(context.Context) error

	mongo    *repository.MongoDB
	postgres *sql.DB
	redis    *redis.Client
}

// InitializeStores connects to the configured pricing store. Connections are
// retried with exponential backoff until cfg.Database.ConnectRetryTimeout.
// Redis is optional: when it cannot be reached the service runs without the
// shared cache.
func InitializeStores(ctx context.Context, cfg config.Config) (*StoreComponents, error) {
	stores := &StoreComponents{
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{},
		Checkers:        map[string]func(context.Context) error{},
	}

	var pricing repository.PricingRepositoryInterface
	switch cfg.Pricing.Store {
	case config.StoreMongoDB:
		var db *repository.MongoDB
		err := connectWithRetry(ctx, config.StoreMongoDB, cfg.Database.ConnectRetryTimeout, func() error {
			var err error
			db, err = repository.NewMongoDB(cfg.Database.URI, cfg.Database.DatabaseName)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		log.Info().Str("database", cfg.Database.DatabaseName).Msg("Connected to MongoDB")
		stores.mongo = db
		stores.Checkers["mongodb"] = db.HealthCheck

		ttlDays := int(cfg.Database.AuditTTL.Hours() / 24)
		if ttlDays > 0 {
			if err := db.SetAuditTTL(ctx, ttlDays); err != nil {
				log.Warn().Err(err).Msg("Failed to set audit TTL index")
			}
		}

		pricing = repository.NewPricingRepository(db)
		auditCB := newCircuitBreaker(cfg.Database, "mongodb-audit")
		stores.CircuitBreakers["mongodb_audit"] = auditCB
		stores.Audit = repository.NewAuditRepositoryWithCircuitBreaker(repository.NewAuditRepository(db), auditCB)

	case config.StorePostgres:
		var db *sql.DB
		pool := repository.DefaultPostgresConfig()
		pool.MaxOpenConns = cfg.Postgres.MaxOpenConns
		pool.MaxIdleConns = cfg.Postgres.MaxIdleConns
		err := connectWithRetry(ctx, config.StorePostgres, cfg.Database.ConnectRetryTimeout, func() error {
			var err error
			db, err = repository.OpenPostgres(ctx, cfg.Postgres.DSN, pool)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info().Msg("Connected to PostgreSQL")
		stores.postgres = db
		stores.Checkers["postgres"] = db.PingContext

		if cfg.Postgres.AutoMigrate {
			if err := repository.MigrateUp(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}

		pricing = repository.NewPostgresPricingRepository(db)
		stores.Audit = repository.NewInMemoryAuditRepository(cfg.Pricing.AuditCapacity)

	default:
		stores.Pricing = repository.NewInMemoryPricingRepository()
		stores.Audit = repository.NewInMemoryAuditRepository(cfg.Pricing.AuditCapacity)
		log.Info().Msg("Using in-memory pricing store")
		return stores, nil
	}

	if cfg.Redis.Enabled() {
		client, err := repository.NewRedisClient(ctx, repository.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable - continuing without shared pricing cache")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
			stores.redis = client
			stores.Checkers["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
			pricing = repository.NewPricingRepositoryWithRedisCache(pricing, client, cfg.Redis.TTL)
		}
	}

	// Open-circuit reads must not reach the Redis cache.
	name := cfg.Pricing.Store + "-pricing"
	pricingCB := newCircuitBreaker(cfg.Database, name)
	stores.CircuitBreakers[cfg.Pricing.Store+"_pricing"] = pricingCB
	stores.Pricing = repository.NewPricingRepositoryWithCircuitBreaker(pricing, pricingCB)

	return stores, nil
}

// Close releases every open connection.
func (s *StoreComponents) Close(ctx context.Context) error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.mongo != nil {
		errs = append(errs, s.mongo.Close(ctx))
	}
	if s.postgres != nil {
		errs = append(errs, s.postgres.Close())
	}
	return errors.Join(errs...)
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	})
}

// connectWithRetry calls connect until it succeeds, ctx is done or maxElapsed
// has passed. A zero maxElapsed tries once.
func connectWithRetry(ctx context.Context, store string, maxElapsed time.Duration, connect func() error) error {
	if maxElapsed <= 0 {
		return connect()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed

	return backoff.RetryNotify(connect, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Warn().Err(err).Str("store", store).Dur("retry_in", next).Msg("Store connection failed, retrying")
	})
}
