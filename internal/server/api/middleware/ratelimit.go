package middleware

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/types"
)

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	requests map[string]*bucket
	mu       sync.Mutex
	rate     int // requests per interval
	interval time.Duration
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
}

// Allow checks if a request from the given key is allowed
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	b, exists := r.requests[key]
	if !exists {
		r.requests[key] = &bucket{
			tokens:    r.rate - 1,
			lastReset: now,
		}
		return true
	}

	// Reset tokens if interval has passed
	if now.Sub(b.lastReset) >= r.interval {
		b.tokens = r.rate - 1
		b.lastReset = now
		return true
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// RateLimit creates a rate limiting middleware
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(key) {
			c.JSON(429, gin.H{
				"success": false,
				"error": gin.H{
					"code":    types.ErrCodeRateLimited,
					"message": "too many requests",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ErrRequestTooLarge is returned by the size-limited body reader once
// the limit is exhausted.
var ErrRequestTooLarge = errors.New("request body too large")

// RequestSizeLimit creates a middleware that limits request body size
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = &limitedBody{r: c.Request.Body, remaining: maxBytes}
		c.Next()
	}
}

// limitedBody wraps a request body and fails reads past the limit.
type limitedBody struct {
	r         io.ReadCloser
	remaining int64
}

func (l *limitedBody) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		return 0, ErrRequestTooLarge
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}

func (l *limitedBody) Close() error {
	return l.r.Close()
}
