package middleware

import (
	"net/http"

	"github.com/juju/ratelimit"
)

// NewLimiter создаёт общий на процесс token bucket: rps токенов в секунду, ёмкость rps.
// Возвращает nil при rps <= 0 (ограничение выключено).
func NewLimiter(rps float64) *ratelimit.Bucket {
	if rps <= 0 {
		return nil
	}
	capacity := int64(rps)
	if capacity < 1 {
		capacity = 1
	}
	return ratelimit.NewBucketWithRate(rps, capacity)
}

// WithRateLimit отвечает 429, когда в bucket нет свободного токена.
func WithRateLimit(limiter *ratelimit.Bucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.TakeAvailable(1) == 0 {
				log.Warnw("rate limited", "method", r.Method, "uri", r.RequestURI)
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
