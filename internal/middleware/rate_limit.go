package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/i18n"
)

const defaultNumShards = 16

// bucket is the token bucket of one caller.
type bucket struct {
	tokens float64
	last   time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

// ShardedRateLimiter is a token bucket limiter: each caller may burst up to
// rate requests and regains rate tokens per window. Callers are spread
// across shards to reduce lock contention.
type ShardedRateLimiter struct {
	shards   []*limiterShard
	rate     int
	window   time.Duration
	perToken time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with numShards shards and starts
// its idle-bucket janitor. Call Stop to end it.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if rate < 1 {
		rate = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &ShardedRateLimiter{
		shards:   make([]*limiterShard, numShards),
		rate:     rate,
		window:   window,
		perToken: window / time.Duration(rate),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	for i := range rl.shards {
		rl.shards[i] = &limiterShard{buckets: make(map[string]*bucket)}
	}

	go rl.janitor()
	return rl
}

func (rl *ShardedRateLimiter) shard(key string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take spends one token of key. When none is left it returns the wait until
// the next token.
func (rl *ShardedRateLimiter) take(key string) (allowed bool, remaining int, wait time.Duration) {
	s := rl.shard(key)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.rate), last: now}
		s.buckets[key] = b
	}

	elapsed := now.Sub(b.last)
	if elapsed > 0 {
		b.tokens = math.Min(float64(rl.rate), b.tokens+elapsed.Seconds()/rl.perToken.Seconds())
		b.last = now
	}

	if b.tokens < 1 {
		missing := 1 - b.tokens
		return false, 0, time.Duration(missing * float64(rl.perToken))
	}
	b.tokens--
	return true, int(b.tokens), 0
}

// RateLimit limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// UserRateLimit limits requests per authenticated caller, falling back to
// the client IP. Its buckets are separate from those of RateLimit.
func (rl *ShardedRateLimiter) UserRateLimit() gin.HandlerFunc {
	return rl.limit(func(c *gin.Context) string {
		return "caller:" + callerIdentity(c)
	})
}

func (rl *ShardedRateLimiter) limit(key func(*gin.Context) string) gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)

	return func(c *gin.Context) {
		allowed, remaining, wait := rl.take(key(c))

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			abortWithError(c, http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *ShardedRateLimiter) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictFull()
		case <-rl.stopCh:
			return
		}
	}
}

// evictFull drops buckets that have refilled completely; a new bucket
// starts full, so forgetting them changes nothing.
func (rl *ShardedRateLimiter) evictFull() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, b := range s.buckets {
			refill := now.Sub(b.last).Seconds() / rl.perToken.Seconds()
			if b.tokens+refill >= float64(rl.rate) {
				delete(s.buckets, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the janitor. It is safe to call more than once.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCh)
	})
}

// Len returns the number of tracked callers.
func (rl *ShardedRateLimiter) Len() int {
	n := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		n += len(s.buckets)
		s.mu.Unlock()
	}
	return n
}
