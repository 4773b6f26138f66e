package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterTTL  = 10 * time.Minute
	sweepEveryN = 256
	retryAfterS = "1"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet keeps one token bucket per client ip. Idle buckets are swept
// inline every sweepEveryN lookups instead of by a background goroutine.
type limiterSet struct {
	mu      sync.Mutex
	r       rate.Limit
	b       int
	clients map[string]*ipLimiter
	lookups int
	now     func() time.Time
}

func newLimiterSet(r rate.Limit, b int) *limiterSet {
	return &limiterSet{r: r, b: b, clients: make(map[string]*ipLimiter), now: time.Now}
}

func (s *limiterSet) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.lookups++
	if s.lookups%sweepEveryN == 0 {
		cutoff := now.Add(-limiterTTL)
		for k, v := range s.clients {
			if v.lastSeen.Before(cutoff) {
				delete(s.clients, k)
			}
		}
	}
	il, ok := s.clients[ip]
	if !ok {
		il = &ipLimiter{limiter: rate.NewLimiter(s.r, s.b)}
		s.clients[ip] = il
	}
	il.lastSeen = now
	return il.limiter.AllowN(now, 1)
}

func (s *limiterSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RateLimit applies per-ip token-bucket limiting: r requests per second
// with bursts of b. A non-positive r disables limiting.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	if r <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	set := newLimiterSet(r, b)
	return func(c *gin.Context) {
		if !set.allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfterS)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
