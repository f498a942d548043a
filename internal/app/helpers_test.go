//go:build !integration

package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryConfig is a valid configuration over the in-memory store.
func memoryConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 5 * time.Second,
		},
		Log: config.LogConfig{Level: "error"},
		Pricing: config.PricingConfig{
			Store:         config.StoreMemory,
			CacheSize:     100,
			CacheTTL:      time.Minute,
			MaxTotalPages: 1000,
			Currency:      "INR",
			AuditCapacity: 100,
		},
		Auth: config.AuthConfig{OwnerRole: "owner"},
	}
}

const pricingYAML = `monochrome:
  single_sided: {base_price: 3, base_limit: 10, extra_price: 1}
`

func writePricingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
