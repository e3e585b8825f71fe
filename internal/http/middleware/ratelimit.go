package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slotwise/scheduler/pkg/logging"
)

// RateLimiter provides per-IP fixed-window rate limiting backed by Redis,
// so the limit holds across replicas.
type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *logging.Logger
}

// NewRateLimiter creates a limiter allowing limit requests per window per IP.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger *logging.Logger) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
}

// Allow returns true if the request from ip is within the rate limit.
// When Redis is unreachable the request is allowed; rate limiting must not
// take the API down with it.
func (rl *RateLimiter) Allow(r *http.Request, ip string) bool {
	bucket := time.Now().Unix() / int64(rl.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", ip, bucket)

	count, err := rl.client.Incr(r.Context(), key).Result()
	if err != nil {
		rl.logger.Warn("rate limiter redis error, allowing request", "error", err)
		return true
	}
	if count == 1 {
		rl.client.Expire(r.Context(), key, rl.window)
	}
	return count <= rl.limit
}

// RateLimit returns an HTTP middleware that rejects requests exceeding the
// configured per-window limit with 429 Too Many Requests.
func RateLimit(client *redis.Client, limit int, window time.Duration, logger *logging.Logger) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(client, limit, window, logger)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.Allow(r, ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
