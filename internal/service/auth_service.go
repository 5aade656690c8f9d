// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/repository"
	"github.com/uservault/backend/internal/utils"
)

// AuthService handles registration, role-scoped login, and token refresh.
// One service covers both roles; the role argument scopes credential lookups
// so the two principal classes never cross authentication paths.
type AuthService struct {
	users repository.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a new non-admin account from a registration request.
// Admin accounts cannot be created through this path.
func (s *AuthService) Register(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	email := models.NormalizeEmail(reg.Email)

	// Reject early on a taken email for a friendly conflict message; the
	// unique index still backstops concurrent registrations.
	exists, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewDuplicateError("User", "email", email)
	}

	passwordHash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, utils.NewInternalServerError(err)
	}

	user := models.NewUser(reg.Name, email, reg.Phone)
	user.PasswordHash = passwordHash

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	utils.LogAuth("register", user.ID, user.Email, true, "")

	return user.Sanitize(), nil
}

// Login authenticates credentials scoped to a role and issues a token pair.
// Every failure path returns the same invalid-credentials error so the
// response never reveals whether the email exists or holds another role.
func (s *AuthService) Login(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error) {
	email := models.NormalizeEmail(creds.Email)

	user, err := s.users.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login", 0, email, false, "unknown email for role")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, err
	}

	match, err := auth.VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, utils.NewInternalServerError(err)
	}
	if !match {
		utils.LogAuth("login", user.ID, user.Email, false, "wrong password")
		return nil, utils.NewInvalidCredentialsError()
	}

	tokens, err := s.jwt.IssueTokenPair(user)
	if err != nil {
		return nil, utils.NewInternalServerError(err)
	}

	utils.LogAuth("login", user.ID, user.Email, true, "")

	return &models.LoginResult{
		User:   user.Sanitize(),
		Tokens: *tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
// The principal is re-fetched before reissuing so a deleted account, or an
// account that lost the role the token was issued under, is refused even
// though the token itself is still cryptographically valid. Presented
// refresh tokens are not tracked or rotated server-side.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, role models.Role) (*models.TokenPair, error) {
	claims, err := s.jwt.ValidateToken(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		log.Debug().Err(err).Msg("Refresh token validation failed")
		return nil, utils.NewInvalidRefreshTokenError()
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil || user == nil {
		utils.LogAuth("refresh", claims.UserID, claims.Email, false, "principal no longer exists")
		return nil, utils.NewInvalidRefreshTokenError()
	}

	if !user.HasRole(role) {
		utils.LogAuth("refresh", user.ID, user.Email, false, "role mismatch")
		return nil, utils.NewInvalidRefreshTokenError()
	}

	tokens, err := s.jwt.IssueTokenPair(user)
	if err != nil {
		return nil, utils.NewInternalServerError(err)
	}

	utils.LogAuth("refresh", user.ID, user.Email, true, "")

	return tokens, nil
}
