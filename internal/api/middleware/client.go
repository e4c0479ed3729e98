package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type ctxKey string

const ctxClientID ctxKey = "client_id"

// UnknownClient identifies requests whose origin cannot be determined. All
// such requests share one budget.
const UnknownClient = "unknown"

func ClientIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxClientID)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// ClientIdentity stores the caller's identity in the request context. When
// trustForwarded is set the first X-Forwarded-For entry takes precedence over
// the transport peer address.
func ClientIdentity(trustForwarded bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxClientID, ClientID(r, trustForwarded))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClientID(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	if r.RemoteAddr == "" {
		return UnknownClient
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if host == "" {
		return UnknownClient
	}
	return host
}
