// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/utils"
)

// Recovery recovers from panics in downstream handlers and returns a
// 500 Internal Server Error instead of dropping the connection.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					requestID, _ := auth.GetRequestID(r)

					log.Error().
						Str("request_id", requestID).
						Interface("panic", recovered).
						Str("stack", string(debug.Stack())).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr).
						Msg("Panic recovered in request handler")

					utils.Error(w, http.StatusInternalServerError, constants.MsgInternalServerError, nil)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
