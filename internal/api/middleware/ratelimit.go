package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"T9-Keypad/internal/domain/ratelimit"
	metricsinfra "T9-Keypad/internal/infra/metrics"
	"T9-Keypad/pkg/api/response"
)

const TooManyRequestsMessage = "Too many requests. Please try again later."

// RateLimit rejects requests from clients that exhausted their budget. It
// must run after ClientIdentity.
func RateLimit(gate ratelimit.Gate, logger *slog.Logger, m *metricsinfra.Metrics) func(http.Handler) http.Handler {
	if gate == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, ok := ClientIDFromContext(r.Context())
			if !ok {
				clientID = UnknownClient
			}

			decision := gate.Check(clientID)
			m.ObserveRateLimit(decision.Limited, decision.Tracked)
			if decision.Limited {
				if logger != nil {
					logger.Warn("rate limit exceeded",
						slog.String("client", clientID),
						slog.String("path", r.URL.Path),
					)
				}
				setRetryAfterHeader(w, decision.RetryAfter)
				response.Error(w, http.StatusTooManyRequests, TooManyRequestsMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setRetryAfterHeader(w http.ResponseWriter, d time.Duration) {
	if d <= 0 {
		return
	}
	secs := int64(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
}
