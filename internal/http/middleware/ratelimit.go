package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/preston-bernstein/puppy-bowl-client/internal/logging"
	"github.com/preston-bernstein/puppy-bowl-client/internal/metrics"
)

// RateLimit caps requests per client IP within window. Rejections answer 429
// with a JSON error and are counted per path. A non-positive limit disables it.
func RateLimit(limit int, window time.Duration, recorder *metrics.Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if window <= 0 {
		window = time.Minute
	}

	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			recorder.RecordRateLimit(r.URL.Path)
			logging.Warn(r.Context(), logger, "rate limit exceeded", slog.String(logging.FieldPath, r.URL.Path))

			body := map[string]string{"error": "too many requests"}
			if id := RequestIDFromContext(r.Context()); id != "" {
				body["requestId"] = id
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(body)
		}),
	)
}
