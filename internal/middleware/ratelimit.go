package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/healthassist-server/internal/domain"
)

// clientLimiter tracks a per-client token bucket and when it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	staleAge time.Duration
}

// NewRateLimiter creates a limiter from server config.
func NewRateLimiter(cfg *domain.RateLimitConfig) *RateLimiter {
	rps := rate.Limit(10)
	burst := 20
	if cfg != nil {
		if cfg.RequestsPerSecond > 0 {
			rps = rate.Limit(cfg.RequestsPerSecond)
		}
		if cfg.Burst > 0 {
			burst = cfg.Burst
		}
	}
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		rps:      rps,
		burst:    burst,
		staleAge: 10 * time.Minute,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[clientIP]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[clientIP] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		for ip, cl := range rl.clients {
			if time.Since(cl.lastSeen) > rl.staleAge {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Handler returns the gin middleware enforcing the limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				domain.NewAPIError(domain.ErrCodeRateLimit, "Too many requests", "", c.GetString("correlation_id")))
			return
		}
		c.Next()
	}
}
