package middleware

import (
	"net/http"

	"github.com/crazybass81/DOT-V0.1-sub002/internal/handler/http/response"
	"github.com/crazybass81/DOT-V0.1-sub002/internal/pkg/ratelimit"
)

// RateLimit counts requests per (user, endpoint) and rejects with 429 once
// the window limit is exceeded. Runs after AuthRequired so the user ID is
// always present.
func RateLimit(limiter *ratelimit.Limiter, endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := UserID(r)
			if !limiter.Allow(userID, endpoint) {
				response.TooManyRequests(w, "Too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
