package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/jacketscrape/config"
	"github.com/use-agent/jacketscrape/models"
	"golang.org/x/time/rate"
)

// RateLimitMessage is shown to clients that exceed their budget.
const RateLimitMessage = "Too many requests, please wait a moment and try again."

const (
	idleTTL       = time.Hour
	sweepInterval = 5 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter holds one token bucket per client identity: the API key when the
// request carries one, the client IP otherwise. Routes that share a Limiter
// share the budget.
type Limiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewLimiter creates a Limiter and starts evicting buckets idle for an hour.
func NewLimiter(cfg config.RateLimitConfig) *Limiter {
	l := &Limiter{
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		buckets: make(map[string]*bucket),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for now := range ticker.C {
			l.evict(now.Add(-idleTTL))
		}
	}()

	return l
}

// Allow spends one token from identity's bucket.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[identity] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

// evict drops buckets last used before cutoff and returns how many remain.
func (l *Limiter) evict(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, id)
		}
	}
	return len(l.buckets)
}

// Middleware rate limits a route, handing refused requests to reject.
func (l *Limiter) Middleware(reject Rejector) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetString(apiKeyContextKey)
		if identity == "" {
			identity = c.ClientIP()
		}

		if !l.Allow(identity) {
			reject(c, models.NewScrapeError(models.ErrCodeRateLimited, RateLimitMessage, nil))
			return
		}
		c.Next()
	}
}
