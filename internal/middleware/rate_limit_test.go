package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
)

// fakeClock is a settable time source for the limiter.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*ShardedRateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewShardedRateLimiter(rate, window, 4)
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestNewShardedRateLimiter_Defaults(t *testing.T) {
	tests := []struct {
		name       string
		rate       int
		window     time.Duration
		shards     int
		wantRate   int
		wantShards int
		wantWindow time.Duration
	}{
		{name: "as given", rate: 10, window: time.Second, shards: 8, wantRate: 10, wantShards: 8, wantWindow: time.Second},
		{name: "zero shards", rate: 10, window: time.Second, shards: 0, wantRate: 10, wantShards: defaultNumShards, wantWindow: time.Second},
		{name: "zero rate", rate: 0, window: time.Second, shards: 2, wantRate: 1, wantShards: 2, wantWindow: time.Second},
		{name: "zero window", rate: 5, window: 0, shards: 2, wantRate: 5, wantShards: 2, wantWindow: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewShardedRateLimiter(tt.rate, tt.window, tt.shards)
			defer rl.Stop()

			assert.Equal(t, tt.wantRate, rl.rate)
			assert.Len(t, rl.shards, tt.wantShards)
			assert.Equal(t, tt.wantWindow, rl.window)
		})
	}
}

func TestShardedRateLimiter_Take(t *testing.T) {
	rl, clock := newTestLimiter(t, 3, 3*time.Second)

	for want := 2; want >= 0; want-- {
		allowed, remaining, _ := rl.take("ip:10.0.0.1")
		require.True(t, allowed)
		assert.Equal(t, want, remaining)
	}

	allowed, _, wait := rl.take("ip:10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, time.Second, wait)

	t.Run("other callers have their own bucket", func(t *testing.T) {
		allowed, remaining, _ := rl.take("ip:10.0.0.2")
		assert.True(t, allowed)
		assert.Equal(t, 2, remaining)
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		clock.Advance(time.Second)
		allowed, remaining, _ := rl.take("ip:10.0.0.1")
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)

		clock.Advance(500 * time.Millisecond)
		allowed, _, wait := rl.take("ip:10.0.0.1")
		assert.False(t, allowed)
		assert.Equal(t, 500*time.Millisecond, wait)
	})

	t.Run("refill is capped at the rate", func(t *testing.T) {
		clock.Advance(time.Hour)
		_, remaining, _ := rl.take("ip:10.0.0.1")
		assert.Equal(t, 2, remaining)
	})
}

func TestShardedRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, clock := newTestLimiter(t, 2, time.Minute)

	router := gin.New()
	router.Use(rl.RateLimit())
	router.POST("/api/quotes", func(c *gin.Context) { c.Status(http.StatusOK) })

	quote := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/quotes", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := quote()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, quote().Code)

	limited := quote()
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), dto.ErrCodeRateLimit)

	clock.Advance(30 * time.Second)
	assert.Equal(t, http.StatusOK, quote().Code)
}

func TestShardedRateLimiter_UserRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := newTestLimiter(t, 1, time.Minute)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if sub := c.GetHeader("X-Test-Subject"); sub != "" {
			c.Set(ClaimsKey, &dto.Claims{Subject: sub})
		}
		c.Next()
	})
	router.Use(rl.RateLimit(), rl.UserRateLimit())
	router.PUT("/api/pricing", func(c *gin.Context) { c.Status(http.StatusOK) })

	put := func(remote, subject string) int {
		req := httptest.NewRequest(http.MethodPut, "/api/pricing", nil)
		req.RemoteAddr = remote
		if subject != "" {
			req.Header.Set("X-Test-Subject", subject)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, put("192.0.2.1:1", "owner-a"), "ip and caller buckets are separate")
	assert.Equal(t, http.StatusTooManyRequests, put("192.0.2.2:1", "owner-a"), "caller limit follows the subject")
	assert.Equal(t, http.StatusOK, put("192.0.2.3:1", "owner-b"))
	assert.Equal(t, http.StatusTooManyRequests, put("192.0.2.3:1", "owner-c"), "ip limit still applies")
}

func TestShardedRateLimiter_EvictFull(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, time.Minute)

	rl.take("ip:a")
	rl.take("ip:b")
	rl.take("ip:b")
	require.Equal(t, 2, rl.Len())

	clock.Advance(30 * time.Second)
	rl.evictFull()
	assert.Equal(t, 1, rl.Len(), "a is full again, b still owes a token")

	clock.Advance(30 * time.Second)
	rl.evictFull()
	assert.Equal(t, 0, rl.Len())
}

func TestShardedRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
