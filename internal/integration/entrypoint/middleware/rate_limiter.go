package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// RateLimiterConfig holds rate limiter settings. Zero values select 5 attempts per minute.
type RateLimiterConfig struct {
	Enabled        bool
	MaxAttempts    int
	WindowDuration time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles a client per route with a token bucket holding
// MaxAttempts tokens, refilled evenly over WindowDuration.
type RateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	enabled    bool
	burst      int
	window     time.Duration
	retryAfter string
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.WindowDuration <= 0 {
		config.WindowDuration = time.Minute
	}

	refill := config.WindowDuration / time.Duration(config.MaxAttempts)
	return &RateLimiter{
		visitors:   make(map[string]*visitor),
		enabled:    config.Enabled,
		burst:      config.MaxAttempts,
		window:     config.WindowDuration,
		retryAfter: strconv.Itoa(int(math.Ceil(refill.Seconds()))),
	}
}

// Middleware rejects requests over budget with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled || rl.allow(c.ClientIP()+" "+c.FullPath()) {
			c.Next()
			return
		}

		c.Header("Retry-After", rl.retryAfter)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  string(domainerror.ErrCodeRateLimited),
		})
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.burst)), rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// Cleanup forgets clients idle for a full window, whose buckets are full again.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.window)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}

// StartCleanup calls Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
