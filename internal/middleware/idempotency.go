package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
	// maxIdempotentBody bounds the request body read for fingerprinting.
	maxIdempotentBody = 1 << 20
)

// cachedResponse stores a cached HTTP response for idempotency.
type cachedResponse struct {
	BodyHash   string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[*cachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   NewIdempotencyCache(10000, IdempotencyKeyTTL),
		Enabled: true,
	}
}

// NewIdempotencyCache creates the response store used by Idempotency.
func NewIdempotencyCache(capacity int, ttl time.Duration) *cache.Sharded[*cachedResponse] {
	return cache.NewSharded[*cachedResponse]("idempotency", capacity, ttl, 8)
}

// Idempotency returns a middleware that replays the stored response when a
// POST, PUT or PATCH arrives again with the same Idempotency-Key, path and
// caller. Reusing a key with a different body is a conflict. Only 2xx
// responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		bodyHash, err := hashRequestBody(c.Request)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}
		cacheKey := idempotencyCacheKey(key, c)

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			if cached.BodyHash != bodyHash {
				abortWithError(c, http.StatusConflict, i18n.ErrKeyIdempotencyMismatch)
				return
			}
			for k, v := range cached.Header {
				c.Writer.Header()[k] = v
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.Header.Get("Content-Type"), cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		c.Writer = writer

		c.Next()

		if writer.statusCode >= 200 && writer.statusCode < 300 {
			header := http.Header{}
			if ct := writer.Header().Get("Content-Type"); ct != "" {
				header.Set("Content-Type", ct)
			}
			cfg.Cache.Set(cacheKey, &cachedResponse{
				BodyHash:   bodyHash,
				StatusCode: writer.statusCode,
				Header:     header,
				Body:       writer.body.Bytes(),
			})
		}
	}
}

// idempotencyCacheKey scopes a client key to the method, path and caller.
func idempotencyCacheKey(key string, c *gin.Context) string {
	h := sha256.New()
	for _, part := range []string{key, c.Request.Method, c.Request.URL.Path, callerIdentity(c)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// hashRequestBody fingerprints the body and restores it for the handler.
func hashRequestBody(req *http.Request) (string, error) {
	if req.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(io.LimitReader(req.Body, maxIdempotentBody))
	if err != nil {
		return "", err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// responseWriter captures the response for caching.
type responseWriter struct {
	gin.ResponseWriter
	body       *bytes.Buffer
	statusCode int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
