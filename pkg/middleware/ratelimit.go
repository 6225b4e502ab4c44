package middleware

import (
	"net/http"
	"time"

	"moodflix/pkg/utils"

	"github.com/go-chi/httprate"
)

// RateLimit caps requests per client IP per minute. Zero or less disables it.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.ResponseError(w, http.StatusTooManyRequests, "Too many requests, slow down.")
		}),
	)
}
