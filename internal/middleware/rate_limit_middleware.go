package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// IPRateLimiter allows `requests` per `window` per client IP. A non-positive
// limit disables it.
func IPRateLimiter(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			utils.RespondErrorWithCode(w, r, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded,
				"Too many requests", nil)
		}),
	)
}
