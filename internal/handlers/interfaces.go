// Package handlers implements the HTTP layer of the API.
package handlers

import (
	"context"

	"github.com/uservault/backend/internal/models"
)

// AuthServiceInterface defines the authentication operations the HTTP layer
// depends on. Handlers accept this interface so tests can substitute mocks.
type AuthServiceInterface interface {
	Register(ctx context.Context, reg *models.UserRegistration) (*models.User, error)
	Login(ctx context.Context, creds *models.UserCredentials, role models.Role) (*models.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string, role models.Role) (*models.TokenPair, error)
}

// UserServiceInterface defines the self-service profile operations.
type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error)
	UpdateProfileImage(ctx context.Context, userID int64, imagePath string) (*models.User, error)
}

// AdminServiceInterface defines the dashboard management operations.
type AdminServiceInterface interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	AddUser(ctx context.Context, req *models.AdminUserCreate) (*models.User, error)
	EditUser(ctx context.Context, userID int64, update *models.AdminUserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}
