package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"houndtrack/internal/config"
	"houndtrack/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter applies a per-client token bucket to every API route.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	window   int
	requests int
}

// NewRateLimiter creates a rate limiter from the configured window.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	perSecond := float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Window)
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    cfg.RateLimit.Burst,
		window:   cfg.RateLimit.Window,
		requests: cfg.RateLimit.Requests,
	}
	go rl.resetLoop(time.Hour)
	return rl
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// resetLoop drops idle buckets wholesale so the map cannot grow
// without bound.
func (rl *RateLimiter) resetLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		rl.limiters = make(map[string]*rate.Limiter)
		rl.mu.Unlock()
	}
}

// Middleware enforces the limit per client IP, answering 429 with a
// Retry-After header when exhausted.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.limiterFor(c.ClientIP())
		if !limiter.Allow() {
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.requests))
			c.Header("Retry-After", fmt.Sprintf("%d", rl.window))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				models.ErrResponse("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
