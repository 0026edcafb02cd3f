package server

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/api"
	"github.com/Kaizen-Gym/Managment-System--Backend/internal/auth"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	bucketTTL     = 3 * time.Minute
	sweepInterval = time.Minute
)

// KeyFunc picks the bucket a request is charged to.
type KeyFunc func(c *gin.Context) string

// ClientKey charges a request to the caller's address.
func ClientKey(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// TenantKey charges a request to the gym on its token, so staff of one gym
// share a budget whatever address they call from. It must run after
// auth.AuthMiddleware and falls back to ClientKey for unscoped callers.
func TenantKey(c *gin.Context) string {
	if gymID, ok := auth.GetGymID(c); ok {
		return "gym:" + strconv.FormatInt(gymID, 10)
	}
	return ClientKey(c)
}

// RateLimiter keeps one token bucket per key. Buckets idle for longer than
// the ttl are dropped by a background sweep that runs until Stop.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
	ttl     time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go rl.sweep(sweepInterval)
	return rl
}

// Stop ends the background sweep. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case now := <-ticker.C:
			rl.evict(now)
		}
	}
}

func (rl *RateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.ttl {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = time.Now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// Middleware rejects requests with 429 once the bucket chosen by key is empty.
func (rl *RateLimiter) Middleware(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(key(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Message: "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
