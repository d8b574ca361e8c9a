package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/config"
	"github.com/shareit/shareit-backend/internal/metrics"
)

const (
	defaultBurst = 5
	minIdleTTL   = 10 * time.Minute
	maxIdleTTL   = 24 * time.Hour
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter holds one token bucket per caller. Buckets idle for longer than
// idleTTL are dropped; idleTTL is never shorter than a full refill, so a
// dropped bucket would have been full again anyway.
type rateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	idle := maxIdleTTL
	if refill := float64(burst) / cfg.RPS; refill < maxIdleTTL.Seconds() {
		idle = time.Duration(refill * float64(time.Second))
	}
	if idle < minIdleTTL {
		idle = minIdleTTL
	}

	return &rateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(cfg.RPS),
		burst:    burst,
		idleTTL:  idle,
		now:      time.Now,
	}
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// sweep must be called with the lock held.
func (l *rateLimiter) sweep(now time.Time) {
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *rateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// callerKey identifies the bucket for a request. On routes behind the identity
// middleware it is the authenticated user; elsewhere it is the client IP.
func callerKey(c *gin.Context) string {
	if id := auth.GetUserID(c); id != 0 {
		return "user:" + strconv.FormatInt(id, 10)
	}
	return "ip:" + c.ClientIP()
}

// RateLimit applies a token bucket per caller. It must run after the identity
// middleware on protected routes so that callers are keyed by who they
// authenticated as rather than by what they claim in a header.
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	return newRateLimiter(cfg).middleware()
}

func (l *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(callerKey(c)) {
			metrics.IncRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
