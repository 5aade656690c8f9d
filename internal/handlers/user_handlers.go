package handlers

import (
	"errors"
	"net/http"

	"github.com/uservault/backend/internal/auth"
	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/uploads"
	"github.com/uservault/backend/internal/utils"
)

// UserHandler handles the authenticated self-service profile routes.
type UserHandler struct {
	userService UserServiceInterface
	uploadStore *uploads.Store
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService UserServiceInterface, uploadStore *uploads.Store) *UserHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &UserHandler{
		userService: userService,
		uploadStore: uploadStore,
	}
}

// GetProfile returns the caller's own profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "Profile fetched", map[string]interface{}{
		"user":     user,
		"imageUrl": h.imageURL(user),
	})
}

// UpdateProfile changes the caller's name, email, and phone
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	var update models.ProfileUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "Profile updated successfully", map[string]interface{}{
		"user": user,
	})
}

// UploadProfileImage accepts a multipart image, stores it, and records the
// stored filename on the caller's profile.
func (h *UserHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	if h.uploadStore == nil {
		utils.InternalServerError(w, errors.New("upload store not configured"))
		return
	}

	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		utils.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile(constants.FormFieldImage)
	if err != nil {
		utils.BadRequest(w, "Image file is required", nil)
		return
	}
	defer file.Close()

	filename, err := h.uploadStore.Save(file, header)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.userService.UpdateProfileImage(r.Context(), userID, filename)
	if err != nil {
		// The profile row is gone; don't leave the orphaned file behind
		if removeErr := h.uploadStore.Remove(filename); removeErr != nil {
			utils.LogError(removeErr, map[string]interface{}{"filename": filename})
		}
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "Profile image uploaded successfully", map[string]interface{}{
		"user":     user,
		"imageUrl": h.imageURL(user),
	})
}

// imageURL maps a stored image filename to its public URL
func (h *UserHandler) imageURL(user *models.User) string {
	if h.uploadStore == nil || user == nil {
		return ""
	}
	return h.uploadStore.PublicURL(user.ImagePath)
}
