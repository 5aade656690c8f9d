// Package auth provides authentication and authorization for the API.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// ContextKey is a custom type for context keys to prevent collisions.
type ContextKey string

// Context keys for storing authenticated user information and request metadata.
const (
	// UserIDContextKey is the context key for storing the authenticated user ID.
	UserIDContextKey ContextKey = constants.UserIDContextKey

	// EmailContextKey is the context key for storing the authenticated user's email.
	EmailContextKey ContextKey = constants.EmailContextKey

	// IsAdminContextKey is the context key for storing the admin flag of the
	// freshly fetched principal record.
	IsAdminContextKey ContextKey = constants.IsAdminContextKey

	// RequestIDContextKey is the context key for storing the unique request ID.
	RequestIDContextKey ContextKey = constants.RequestIDContextKey

	// userContextKey stores the full principal record fetched for this request.
	userContextKey ContextKey = "auth_user"
)

// UserFetcher loads the current principal record from the store.
// The middleware calls it on every protected request so that deleted or
// demoted principals are denied immediately, before their tokens expire.
type UserFetcher interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthProvider defines methods for different authentication mechanisms.
type AuthProvider interface {
	// Authenticate checks the request credentials and returns the token
	// claims if they are valid.
	Authenticate(r *http.Request) (*CustomClaims, error)
}

// JWTAuthProvider implements JWT bearer-token authentication.
type JWTAuthProvider struct {
	jwtService JWTValidator
}

// NewJWTAuthProvider creates a new JWTAuthProvider with the specified JWT validator.
func NewJWTAuthProvider(jwtService JWTValidator) *JWTAuthProvider {
	return &JWTAuthProvider{
		jwtService: jwtService,
	}
}

// Authenticate implements the AuthProvider interface for JWT authentication.
// It extracts the bearer token from the Authorization header and validates
// it as an access token.
func (p *JWTAuthProvider) Authenticate(r *http.Request) (*CustomClaims, error) {
	authHeader := r.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return nil, utils.ErrUnauthorized
	}

	// Check if the header has the correct format (Bearer token)
	if !strings.HasPrefix(authHeader, constants.BearerTokenPrefix) {
		return nil, utils.ErrUnauthorized
	}

	// Extract the token by removing the "Bearer " prefix
	token := strings.TrimPrefix(authHeader, constants.BearerTokenPrefix)

	// Validate the token and extract claims
	claims, err := p.jwtService.ValidateToken(token, constants.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// Middleware wraps an HTTP handler with authentication and principal
// verification. Token claims only establish identity; the principal record
// is re-fetched from the store and the role decision is made on its current
// admin flag. A record that has disappeared yields 401; a non-admin record
// hitting an admin route yields 403.
func Middleware(next http.Handler, users UserFetcher, role models.Role, providers ...AuthProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Generate a request ID if not already present for request tracking
		requestID := r.Header.Get(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set(constants.HeaderXRequestID, requestID)
		}

		// Add request ID to the context
		ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)

		// Try each authentication provider until one succeeds
		var claims *CustomClaims
		var lastErr error
		for _, provider := range providers {
			c, err := provider.Authenticate(r)
			if err == nil {
				claims = c
				break
			}
			lastErr = err
		}

		if claims == nil {
			log.Info().
				Err(lastErr).
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Authentication failed")

			writeAuthError(w, lastErr)
			return
		}

		// Re-fetch the principal so revoked accounts are denied immediately
		user, err := users.GetByID(ctx, claims.UserID)
		if err != nil || user == nil {
			log.Info().
				Int64("user_id", claims.UserID).
				Str("request_id", requestID).
				Str("path", r.URL.Path).
				Msg("Authenticated principal no longer exists")

			utils.Unauthorized(w, constants.MsgUserNotFound)
			return
		}

		// The admin decision comes from the fresh record, never the token
		if role == models.RoleAdmin && !user.IsAdmin {
			log.Warn().
				Int64("user_id", user.ID).
				Str("request_id", requestID).
				Str("path", r.URL.Path).
				Msg("Non-admin principal denied admin route")

			utils.Forbidden(w, constants.MsgAdminRequired)
			return
		}

		// Add user information to the context for use by handlers
		ctx = context.WithValue(ctx, UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, EmailContextKey, user.Email)
		ctx = context.WithValue(ctx, IsAdminContextKey, user.IsAdmin)
		ctx = context.WithValue(ctx, userContextKey, user)

		log.Debug().
			Int64("user_id", user.ID).
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("User authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeAuthError maps an authentication failure to the proper 401 response
func writeAuthError(w http.ResponseWriter, err error) {
	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		utils.ErrorFromAppError(w, appErr)
	case errors.Is(err, utils.ErrExpiredToken):
		utils.Unauthorized(w, constants.MsgTokenExpired)
	default:
		utils.Unauthorized(w, constants.MsgAuthRequired)
	}
}

// RequireAuth returns middleware protecting routes for any authenticated
// principal, user or admin.
func RequireAuth(users UserFetcher, providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Middleware(next, users, models.RoleUser, providers...)
	}
}

// RequireAdmin returns middleware protecting routes for admin principals only.
func RequireAdmin(users UserFetcher, providers ...AuthProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Middleware(next, users, models.RoleAdmin, providers...)
	}
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(UserIDContextKey).(int64)
	return userID, ok
}

// GetEmail extracts the email from the request context.
func GetEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(EmailContextKey).(string)
	return email, ok
}

// IsAdmin reports whether the authenticated principal's current record
// carries the admin flag.
func IsAdmin(r *http.Request) bool {
	isAdmin, ok := r.Context().Value(IsAdminContextKey).(bool)
	return ok && isAdmin
}

// GetUser extracts the full principal record fetched for this request.
func GetUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok
}

// GetRequestID extracts the request ID from the request context.
func GetRequestID(r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(RequestIDContextKey).(string)
	return requestID, ok
}

// IsAuthenticated checks if the request is authenticated.
func IsAuthenticated(r *http.Request) bool {
	_, ok := GetUserID(r)
	return ok
}
