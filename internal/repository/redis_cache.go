package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/metrics"
)

// RedisConfig holds connection settings for the shared pricing cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient creates a client and verifies the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: 2,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

const redisCacheName = "pricing_redis"

// PricingRepositoryWithRedisCache is a cache-aside decorator that shares the
// active pricing of each owner between service replicas. Redis failures
// degrade to the wrapped repository.
type PricingRepositoryWithRedisCache struct {
	repo   PricingRepositoryInterface
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewPricingRepositoryWithRedisCache wraps repo. Entries live for ttl.
func NewPricingRepositoryWithRedisCache(repo PricingRepositoryInterface, client redis.Cmdable, ttl time.Duration) *PricingRepositoryWithRedisCache {
	return &PricingRepositoryWithRedisCache{
		repo:   repo,
		client: client,
		ttl:    ttl,
		prefix: "pricing:active:",
	}
}

func (r *PricingRepositoryWithRedisCache) key(ownerID string) string {
	if ownerID == SystemOwnerID {
		return r.prefix + "_system"
	}
	return r.prefix + ownerID
}

// GetActive serves from Redis when possible. A missing configuration is
// cached as JSON null so owners without pricing do not hit the store.
func (r *PricingRepositoryWithRedisCache) GetActive(ctx context.Context, ownerID string) (*PricingConfigRecord, error) {
	key := r.key(ownerID)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec *PricingConfigRecord
		if jsonErr := json.Unmarshal(data, &rec); jsonErr == nil {
			metrics.RecordCacheOperation(redisCacheName, "get", "hit")
			return rec, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable pricing cache entry")
	case errors.Is(err, redis.Nil):
		metrics.RecordCacheOperation(redisCacheName, "get", "miss")
	default:
		metrics.RecordCacheOperation(redisCacheName, "get", "error")
		log.Warn().Err(err).Str("key", key).Msg("Pricing cache read failed, using store")
	}

	rec, err := r.repo.GetActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if payload, mErr := json.Marshal(rec); mErr == nil {
		if setErr := r.client.Set(ctx, key, payload, r.ttl).Err(); setErr != nil {
			log.Warn().Err(setErr).Str("key", key).Msg("Pricing cache write failed")
		} else {
			metrics.RecordCacheOperation(redisCacheName, "set", "success")
		}
	}
	return rec, nil
}

// Create writes through to the store and drops the owner's cache entry.
func (r *PricingRepositoryWithRedisCache) Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*PricingConfigRecord, error) {
	rec, err := r.repo.Create(ctx, ownerID, cfg, createdBy)
	if err != nil {
		return nil, err
	}
	if delErr := r.client.Del(ctx, r.key(ownerID)).Err(); delErr != nil {
		log.Warn().Err(delErr).Str("owner_id", ownerID).Msg("Pricing cache invalidation failed")
	}
	return rec, nil
}

// List is not cached.
func (r *PricingRepositoryWithRedisCache) List(ctx context.Context, ownerID string, limit int) ([]PricingConfigRecord, error) {
	return r.repo.List(ctx, ownerID, limit)
}
