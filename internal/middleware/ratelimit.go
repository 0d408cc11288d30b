package middleware

import (
	"encoding/json"
	"net/http"

	"golang.org/x/time/rate"
)

// NewRateLimitHandler applies one shared token bucket to every request that
// passes through it. Requests over the limit get 429 without reaching next.
// Mount it only on the expensive routes (generate, publish).
func NewRateLimitHandler(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{"code": "rate_limited", "message": "rate limit exceeded"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
