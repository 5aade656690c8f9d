package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/repository"
	"github.com/uservault/backend/internal/utils"
)

// AdminService handles dashboard management of non-admin accounts.
// Admin records themselves are never listed, edited, or deleted through
// these operations.
type AdminService struct {
	users repository.UserRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(users repository.UserRepository) *AdminService {
	return &AdminService{
		users: users,
	}
}

// ListUsers returns all managed (non-admin) accounts, newest first
func (s *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.ListByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}

	sanitized := make([]*models.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitize())
	}

	return sanitized, nil
}

// GetUser returns a single managed account by ID.
// Admin records read as not found so the dashboard cannot reach them.
func (s *AdminService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, utils.NewNotFoundError("User", userID)
	}
	return user.Sanitize(), nil
}

// AddUser creates a managed account from the dashboard.
// The created principal is always non-admin.
func (s *AdminService) AddUser(ctx context.Context, req *models.AdminUserCreate) (*models.User, error) {
	email := models.NormalizeEmail(req.Email)

	exists, err := s.users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewDuplicateError("User", "email", email)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternalServerError(err)
	}

	user := models.NewUser(req.Name, email, req.Phone)
	user.PasswordHash = passwordHash

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User created from dashboard")

	return user.Sanitize(), nil
}

// EditUser updates a managed account's name, email, and phone
func (s *AdminService) EditUser(ctx context.Context, userID int64, update *models.AdminUserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, utils.NewNotFoundError("User", userID)
	}

	email := models.NormalizeEmail(update.Email)

	if email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, email, userID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, utils.NewDuplicateError("User", "email", email)
		}
	}

	user.Name = update.Name
	user.Email = email
	user.Phone = update.Phone

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Msg("User edited from dashboard")

	return user.Sanitize(), nil
}

// DeleteUser removes a managed account.
// Deletion takes effect on the victim's very next request because protected
// routes re-fetch the principal record.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		return utils.NewNotFoundError("User", userID)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	log.Info().Int64("user_id", userID).Msg("User deleted from dashboard")

	return nil
}
