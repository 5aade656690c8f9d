package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/repository"
	"github.com/uservault/backend/internal/utils"
)

// UserService handles self-service profile operations.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{
		users: users,
	}
}

// GetProfile returns the caller's own profile without sensitive fields
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// UpdateProfile changes the caller's name, email, and phone.
// The email uniqueness check excludes the caller's own record so keeping the
// current email is always allowed. The admin flag cannot be changed here.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update *models.ProfileUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
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

	log.Info().Int64("user_id", user.ID).Msg("Profile updated")

	return user.Sanitize(), nil
}

// UpdateProfileImage records the stored filename of a new profile image
// and returns the refreshed profile.
func (s *UserService) UpdateProfileImage(ctx context.Context, userID int64, imagePath string) (*models.User, error) {
	if err := s.users.UpdateImagePath(ctx, userID, imagePath); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("image_path", imagePath).
		Msg("Profile image updated")

	return user.Sanitize(), nil
}
