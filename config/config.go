// Package config provides configuration management for the print quote service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Pricing store kinds.
const (
	StoreMemory   = "memory"
	StoreMongoDB  = "mongodb"
	StorePostgres = "postgres"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Pricing  PricingConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Postgres PostgresConfig
	Redis    RedisConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	RequestTimeout    time.Duration
	RateLimit         int
	RateWindow        time.Duration
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// PricingConfig selects where rate cards come from and how quotes are bounded.
type PricingConfig struct {
	// Store is one of StoreMemory, StoreMongoDB or StorePostgres.
	Store string
	// File is an optional YAML rate card layered between stored and
	// built-in pricing.
	File string
	// Watch reloads File when it changes.
	Watch bool
	// SeedSystem stores File (or the built-in defaults) as the system
	// configuration when the store has none.
	SeedSystem    bool
	CacheSize     int
	CacheTTL      time.Duration
	MaxTotalPages int
	Currency      string
	AuditCapacity int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// APIKeyHashes are bcrypt hashes of accepted API keys.
	APIKeyHashes []string
	// JWTSecretKey enables bearer tokens and the pricing management routes.
	JWTSecretKey string
	JWTIssuer    string
	JWTLeeway    time.Duration
	OwnerRole    string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	AuditTTL     time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
	// ConnectRetryTimeout bounds the retries of the initial connection.
	ConnectRetryTimeout time.Duration
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// RedisConfig holds the shared pricing cache configuration. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	TTL      time.Duration
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			ReadTimeout:       getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout:   getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			RateLimit:         getEnvInt("RATE_LIMIT", 100),
			RateWindow:        getEnvDuration("RATE_WINDOW", time.Minute),
			EnableIdempotency: getEnvBool("IDEMPOTENCY_ENABLED", true),
			CORSOrigins:       parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:       getEnv("SWAGGER_USER", ""),
			SwaggerPass:       getEnv("SWAGGER_PASS", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Pricing: PricingConfig{
			Store:         strings.ToLower(getEnv("PRICING_STORE", StoreMemory)),
			File:          getEnv("PRICING_FILE", ""),
			Watch:         getEnvBool("PRICING_WATCH", true),
			SeedSystem:    getEnvBool("PRICING_SEED_SYSTEM", false),
			CacheSize:     getEnvInt("PRICING_CACHE_SIZE", 1000),
			CacheTTL:      getEnvDuration("PRICING_CACHE_TTL", time.Minute),
			MaxTotalPages: getEnvInt("MAX_TOTAL_PAGES", 10000),
			Currency:      strings.ToUpper(getEnv("CURRENCY", "INR")),
			AuditCapacity: getEnvInt("AUDIT_MEMORY_CAPACITY", 1000),
		},
		Auth: AuthConfig{
			APIKeyHashes: parseList(os.Getenv("API_KEY_HASHES")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
			JWTIssuer:    getEnv("JWT_ISSUER", ""),
			JWTLeeway:    getEnvDuration("JWT_LEEWAY", 30*time.Second),
			OwnerRole:    getEnv("OWNER_ROLE", "owner"),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "print_quote"),
			AuditTTL:                       getEnvDuration("MONGODB_AUDIT_TTL", 30*24*time.Hour),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
			ConnectRetryTimeout:            getEnvDuration("DB_CONNECT_RETRY_TIMEOUT", 30*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:          getEnv("POSTGRES_DSN", ""),
			MaxOpenConns: getEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			AutoMigrate:  getEnvBool("POSTGRES_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
			TTL:      getEnvDuration("REDIS_PRICING_TTL", 5*time.Minute),
		},
	}
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	switch c.Pricing.Store {
	case StoreMemory:
	case StoreMongoDB:
		if c.Database.URI == "" {
			return fmt.Errorf("PRICING_STORE=%s requires MONGODB_URI", StoreMongoDB)
		}
	case StorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("PRICING_STORE=%s requires POSTGRES_DSN", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown PRICING_STORE %q", c.Pricing.Store)
	}
	if c.Pricing.MaxTotalPages < 0 {
		return fmt.Errorf("MAX_TOTAL_PAGES must not be negative")
	}
	if len(c.Pricing.Currency) != 3 {
		return fmt.Errorf("CURRENCY must be a three letter code, got %q", c.Pricing.Currency)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	return append(defaults, parseList(s)...)
}
