package middleware

import (
	"net/http"

	"campaign-backend/apperrors"
	"campaign-backend/constants"
	"campaign-backend/utils"

	"golang.org/x/time/rate"
)

// RateLimit limite le débit global de requêtes. rps <= 0 désactive la limite.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				utils.RespondHTTPError(w, apperrors.New(http.StatusTooManyRequests, constants.ErrTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
