//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/testutil"
)

func TestInitializeStores_MongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	stores, err := InitializeStores(ctx, mongoConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, stores.Close(ctx))
	})

	assert.Contains(t, stores.CircuitBreakers, "mongodb_pricing")
	assert.Contains(t, stores.CircuitBreakers, "mongodb_audit")
	require.Contains(t, stores.Checkers, "mongodb")
	assert.NoError(t, stores.Checkers["mongodb"](ctx))

	rec, err := stores.Pricing.Create(ctx, "shop-1", model.DefaultPricingConfiguration(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
}

func TestInitializeStores_PostgresWithRedis_Integration(t *testing.T) {
	ctx := context.Background()

	pg, err := testutil.SetupPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Cleanup(ctx) })

	rd, err := testutil.SetupRedis(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rd.Cleanup(ctx) })

	cfg := mongoConfig(t)
	cfg.Pricing.Store = config.StorePostgres
	cfg.Postgres = config.PostgresConfig{DSN: pg.URI, MaxOpenConns: 5, MaxIdleConns: 2, AutoMigrate: true}
	cfg.Redis = config.RedisConfig{Addr: rd.URI, PoolSize: 5, TTL: time.Minute}

	stores, err := InitializeStores(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, stores.Close(ctx))
	})

	assert.Contains(t, stores.CircuitBreakers, "postgres_pricing")
	for _, name := range []string{"postgres", "redis"} {
		require.Contains(t, stores.Checkers, name)
		assert.NoError(t, stores.Checkers[name](ctx), name)
	}
	assert.IsType(t, &repository.InMemoryAuditRepository{}, stores.Audit)

	_, err = stores.Pricing.Create(ctx, repository.SystemOwnerID, model.DefaultPricingConfiguration(), "seed")
	require.NoError(t, err)

	// Served twice: once from PostgreSQL, then from Redis.
	for i := 0; i < 2; i++ {
		rec, err := stores.Pricing.GetActive(ctx, repository.SystemOwnerID)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.True(t, rec.Configuration.Equal(model.DefaultPricingConfiguration()))
	}
}
