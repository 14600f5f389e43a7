package middlewarex

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RateLimit allows perMin requests per minute across all clients with a
// burst of a tenth of that. Zero disables limiting.
func RateLimit(perMin int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if perMin <= 0 {
			return next
		}
		limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), max(perMin/10, 1))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(max(int(time.Minute.Seconds())/perMin, 1)))
				Fail(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
