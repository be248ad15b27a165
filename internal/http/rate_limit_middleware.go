package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTTL       = time.Hour
)

// ipRateLimiterStore holds per-IP limiters. Idle entries are swept inline on access, so the
// store owns no goroutine.
type ipRateLimiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*ipRateLimiterEntry
	rps       float64
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type ipRateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newIPRateLimiterStore(rps float64, burst int) *ipRateLimiterStore {
	return &ipRateLimiterStore{
		limiters:  make(map[string]*ipRateLimiterEntry),
		rps:       rps,
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// IPRateLimitMiddleware enforces per-IP token bucket limits on the public write endpoints
// (deposits, intents, authorization checks). The address is used as a map key only and is
// never logged.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func IPRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newIPRateLimiterStore(rps, burst)

	return func(c *gin.Context) {
		limiter := store.getLimiter(c.ClientIP())

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(reservation.Delay().Seconds())
			reservation.Cancel()
			if retryAfter < 1 {
				retryAfter = 1
			}

			logger.Debug("rate limit exceeded",
				slog.String("route", c.FullPath()),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests. Please retry after the specified delay.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (s *ipRateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		s.sweep(now)
	}

	entry, ok := s.limiters[ip]
	if !ok {
		entry = &ipRateLimiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

// sweep drops limiters idle for longer than limiterIdleTTL. Caller holds s.mu.
func (s *ipRateLimiterStore) sweep(now time.Time) {
	threshold := now.Add(-limiterIdleTTL)
	for ip, entry := range s.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}
