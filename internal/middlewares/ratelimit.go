package middlewares

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond one token per every interval with the
// given burst, answering 429. A zero interval disables limiting.
func RateLimit(every time.Duration, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if every <= 0 {
			return next
		}
		limiter := rate.NewLimiter(rate.Every(every), burst)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
