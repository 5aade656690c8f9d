package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/constants"
)

// RequestID ensures every request carries a correlation ID. An incoming
// X-Request-ID header is honored; otherwise a new ID is generated. The ID
// is echoed on the response so clients can reference it.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
				r.Header.Set(constants.HeaderXRequestID, requestID)
			}

			w.Header().Set(constants.HeaderXRequestID, requestID)

			ctx := context.WithValue(r.Context(), auth.RequestIDContextKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
