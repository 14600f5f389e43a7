package middlewarex

import (
	"math/rand/v2"
	"net/http"
	"time"
)

// Latency delays every request by d plus up to d of jitter, so responses to
// overlapping requests can arrive out of order.
func Latency(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := time.NewTimer(d + rand.N(d))
			defer t.Stop()
			select {
			case <-t.C:
			case <-r.Context().Done():
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
