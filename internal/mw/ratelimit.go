package mw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one token bucket per client IP and prunes
// buckets that have been idle for a while, so the map cannot grow
// without bound under churny traffic.
type limiterSet struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	r       rate.Limit
	b       int
}

func newLimiterSet(r rate.Limit, b int) *limiterSet {
	return &limiterSet{
		clients: make(map[string]*clientLimiter),
		r:       r,
		b:       b,
	}
}

func (ls *limiterSet) get(ip string) *rate.Limiter {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	c, ok := ls.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(ls.r, ls.b)}
		ls.clients[ip] = c
	}
	c.lastSeen = time.Now()

	if len(ls.clients) > 1024 {
		ls.prune()
	}
	return c.limiter
}

// prune drops limiters idle for more than an hour. Caller holds mu.
func (ls *limiterSet) prune() {
	cutoff := time.Now().Add(-time.Hour)
	for ip, c := range ls.clients {
		if c.lastSeen.Before(cutoff) {
			delete(ls.clients, ip)
		}
	}
}

// RateLimiter is a middleware for IP-based rate limiting.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	set := newLimiterSet(r, b)
	return func(c *gin.Context) {
		if !set.get(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
