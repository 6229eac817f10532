package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/folio/config"
	"github.com/use-agent/folio/models"
	"github.com/use-agent/folio/session"
	"golang.org/x/time/rate"
)

const (
	limiterSweepEvery = 5 * time.Minute
	limiterIdleAfter  = time.Hour
)

// KeyFunc names the bucket a request draws from.
type KeyFunc func(c *gin.Context) string

// SessionKey keys requests carrying the cookie of a live session by that
// session, and everything else by client IP. It must run before Session,
// which would otherwise mint a fresh session (and bucket) per cookieless
// request.
func SessionKey(store *session.Store, cookieName string) KeyFunc {
	return func(c *gin.Context) string {
		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			if _, ok := store.Get(id); ok {
				return "session:" + id
			}
		}
		return "ip:" + c.ClientIP()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	cfg      config.RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

func newLimiterSet(cfg config.RateLimitConfig) *limiterSet {
	return &limiterSet{cfg: cfg, limiters: make(map[string]*limiterEntry)}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(s.cfg.RequestsPerSecond), s.cfg.Burst),
		}
		s.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep drops limiters unused since cutoff and reports how many went.
func (s *limiterSet) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, entry := range s.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(s.limiters, key)
			n++
		}
	}
	return n
}

func (s *limiterSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// run sweeps idle limiters until ctx is done.
func (s *limiterSet) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now.Add(-limiterIdleAfter))
		}
	}
}

// RateLimit returns token-bucket rate limiting middleware for submissions,
// one bucket per key.
//
// Entries unused for 1 hour are evicted by a background goroutine that runs
// every 5 minutes and exits when ctx is done.
func RateLimit(ctx context.Context, cfg config.RateLimitConfig, key KeyFunc) gin.HandlerFunc {
	set := newLimiterSet(cfg)
	go set.run(ctx, limiterSweepEvery)

	return func(c *gin.Context) {
		if !set.get(key(c), time.Now()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.StateResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeRateLimited,
					Message: "too many submissions, please slow down",
				},
			})
			return
		}

		c.Next()
	}
}
