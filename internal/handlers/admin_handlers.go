package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/uservault/backend/internal/constants"
	"github.com/uservault/backend/internal/models"
	"github.com/uservault/backend/internal/utils"
)

// AdminHandler handles the dashboard routes for managing non-admin accounts.
// Authorization is enforced by the admin middleware before these run.
type AdminHandler struct {
	adminService AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService AdminServiceInterface) *AdminHandler {
	if adminService == nil {
		panic("adminService cannot be nil")
	}
	return &AdminHandler{
		adminService: adminService,
	}
}

// userIDParam extracts and parses the userID URL parameter
func userIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, constants.ParamUserID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.NewBadRequestError("Invalid user ID")
	}
	return id, nil
}

// ListUsers returns all managed accounts, newest first
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "Users fetched", map[string]interface{}{
		"users": users,
	})
}

// GetUser returns a single managed account
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.adminService.GetUser(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "User fetched", map[string]interface{}{
		"user": user,
	})
}

// AddUser creates a managed account from the dashboard
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req models.AdminUserCreate
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.adminService.AddUser(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Created(w, "User created successfully", map[string]interface{}{
		"user": user,
	})
}

// EditUser updates a managed account
func (h *AdminHandler) EditUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	var update models.AdminUserUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, err := h.adminService.EditUser(r.Context(), userID, &update)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "User updated successfully", map[string]interface{}{
		"user": user,
	})
}

// DeleteUser removes a managed account
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDParam(r)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.OK(w, "User deleted successfully", nil)
}
