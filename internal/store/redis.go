package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps the redis client. All methods are nil-safe: with no redis
// configured the server simply runs without caching or shared rate
// limiting.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts. An empty addr returns
// nil, which every caller treats as "redis disabled".
func NewRedis(addr string) *Redis {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// Incr atomically increments a counter and sets its expiry on first use.
// Returns the new value. Used by the fixed-window rate limiter.
func (r *Redis) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		r.Client.Expire(ctx, key, window)
	}
	return n, nil
}

const reporteKeyPrefix = "asistencia:reporte:"

// GetReporte returns the cached report payload for a date, or (nil, false)
// on miss or any redis failure.
func (r *Redis) GetReporte(ctx context.Context, fecha string) ([]byte, bool) {
	if r == nil || r.Client == nil {
		return nil, false
	}
	payload, err := r.Client.Get(ctx, reporteKeyPrefix+fecha).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// SetReporte caches the rendered report payload for a date.
func (r *Redis) SetReporte(ctx context.Context, fecha string, payload []byte, ttl time.Duration) {
	if r == nil || r.Client == nil {
		return
	}
	r.Client.Set(ctx, reporteKeyPrefix+fecha, payload, ttl)
}

// InvalidateReporte drops the cached report for a date. Called after every
// attendance write so the report never serves a stale hora.
func (r *Redis) InvalidateReporte(ctx context.Context, fecha string) {
	if r == nil || r.Client == nil {
		return
	}
	r.Client.Del(ctx, reporteKeyPrefix+fecha)
}
