package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"T9-Keypad/pkg/api/response"
)

// Recover turns a handler panic into a 500 error envelope. It must run inside
// Logger and Metrics so the request is still logged and counted.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if logger != nil {
					logger.Error("handler panic",
						"request_id", chiMiddleware.GetReqID(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"panic", fmt.Sprint(rec),
						"stack", string(debug.Stack()),
					)
				}
				if sw.status == 0 {
					response.Error(sw, http.StatusInternalServerError, response.ServerErrorMessage)
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
