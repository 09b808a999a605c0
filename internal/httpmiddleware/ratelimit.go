package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"asistencia/internal/store"
)

// RateLimiter enforces a per-IP request budget per minute. With redis
// available the window is a shared INCR+EXPIRE counter, so every replica
// sees the same budget; otherwise each process falls back to a local
// token bucket.
type RateLimiter struct {
	perMinute int
	redis     *store.Redis

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per client IP.
func NewRateLimiter(perMinute int, redis *store.Redis) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &RateLimiter{
		perMinute: perMinute,
		redis:     redis,
		buckets:   make(map[string]*bucket),
	}
}

// Middleware returns the gin handler enforcing the limit.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(c, ip) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Demasiadas solicitudes"})
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(c *gin.Context, ip string) bool {
	if l.redis != nil {
		key := "ratelimit:" + ip + ":" + time.Now().Format("200601021504")
		if n, err := l.redis.Incr(c.Request.Context(), key, time.Minute); err == nil {
			return n <= int64(l.perMinute)
		}
		// redis unreachable: fall through to the local bucket
	}
	return l.allowLocal(ip)
}

func (l *RateLimiter) allowLocal(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	b, ok := l.buckets[ip]
	if !ok {
		l.buckets[ip] = &bucket{tokens: float64(l.perMinute) - 1, last: now}
		return true
	}
	refill := now.Sub(b.last).Minutes() * float64(l.perMinute)
	b.tokens += refill
	if b.tokens > float64(l.perMinute) {
		b.tokens = float64(l.perMinute)
	}
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
