package handlers

import (
	"net/http"

	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// AuthHandler handles registration, login, and token refresh for both roles.
// The same handler backs the user and admin route groups; the role argument
// on Login and Refresh scopes the underlying credential lookup.
type AuthHandler struct {
	authService AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user self-registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.authService.Register(r.Context(), &reg)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Created(w, "User registered successfully", map[string]interface{}{
		"user": user,
	})
}

// Login returns a handler that authenticates credentials for the given role
// and issues a token pair.
func (h *AuthHandler) Login(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.UserCredentials
		if err := utils.DecodeAndValidate(r, &creds); err != nil {
			utils.ErrorFromAppError(w, utils.ParseError(err))
			return
		}

		result, err := h.authService.Login(r.Context(), &creds, role)
		if err != nil {
			utils.ErrorFromAppError(w, utils.ParseError(err))
			return
		}

		utils.OK(w, "Login successful", map[string]interface{}{
			"user":         result.User,
			"accessToken":  result.Tokens.AccessToken,
			"refreshToken": result.Tokens.RefreshToken,
		})
	}
}

// Refresh returns a handler that exchanges a refresh token for a new token
// pair, scoped to the given role.
func (h *AuthHandler) Refresh(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RefreshRequest
		if err := utils.DecodeAndValidate(r, &req); err != nil {
			utils.ErrorFromAppError(w, utils.ParseError(err))
			return
		}

		tokens, err := h.authService.Refresh(r.Context(), req.RefreshToken, role)
		if err != nil {
			utils.ErrorFromAppError(w, utils.ParseError(err))
			return
		}

		utils.OK(w, "Token refreshed", map[string]interface{}{
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
		})
	}
}
