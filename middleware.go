package keyed

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the response header carrying the generated request ID.
const RequestIDHeader = "X-Request-ID"

// Middleware returns HTTP middleware that begins a scope for each request,
// attaches it to the request context, and closes it once the handler
// returns. Every request gets a fresh request ID, echoed in the
// X-Request-ID response header. If logger is nil, slog.Default is used.
func Middleware(c *Container, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set(RequestIDHeader, requestID)

			scope := c.BeginScope(r.Context())
			ctx := WithScope(r.Context(), scope)

			log := logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)
			log.Debug("scope begun")

			defer func() {
				if err := scope.Close(r.Context()); err != nil {
					log.Error("scope release failed", "error", err)
					return
				}
				log.Debug("scope closed")
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID returns the request ID the middleware stamped on the response,
// or an empty string outside the middleware.
func RequestID(w http.ResponseWriter) string {
	return w.Header().Get(RequestIDHeader)
}
