package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/georef/geo-reference-api/internal/dto"
	apierrors "github.com/georef/geo-reference-api/internal/errors"
	"github.com/georef/geo-reference-api/internal/middleware"
	"github.com/georef/geo-reference-api/internal/services"
)

// UserHandler coordinates user management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers returns users, filterable by partial full-name match.
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := listFilterFromQuery(c)

	users, total, err := h.userService.ListUsers(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      dto.ToUserDTOs(users),
		"pagination": paginationResponse(filter, total),
	})
}

// GetUser returns a single user.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser registers a new user attributed to the acting principal.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string   `json:"username" binding:"required"`
		Password string   `json:"password" binding:"required"`
		FullName string   `json:"full_name" binding:"required"`
		Phone    string   `json:"phone" binding:"required"`
		Email    string   `json:"email" binding:"required,email,max=255"`
		Roles    []string `json:"roles"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	principalID, _ := middleware.GetUserID(c)
	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Roles:    req.Roles,
		AuthorID: &principalID,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser replaces a user's mutable profile fields. Admins may edit any
// user; others only themselves.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if !canEditUser(c, id) {
		apierrors.Forbidden(c, "")
		return
	}

	type UpdateUserRequest struct {
		FullName string `json:"full_name" binding:"required"`
		Phone    string `json:"phone" binding:"required"`
		Email    string `json:"email" binding:"required,email,max=255"`
		Password string `json:"password"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(id, services.UpdateUserInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// PatchUser applies a partial update. Role and activation changes require
// the admin role.
func (h *UserHandler) PatchUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if !canEditUser(c, id) {
		apierrors.Forbidden(c, "")
		return
	}

	type PatchUserRequest struct {
		FullName *string   `json:"full_name"`
		Phone    *string   `json:"phone"`
		Email    *string   `json:"email" binding:"omitempty,email,max=255"`
		Roles    *[]string `json:"roles"`
		IsActive *bool     `json:"is_active"`
	}

	var req PatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if (req.Roles != nil || req.IsActive != nil) && !middleware.IsAdmin(c) {
		apierrors.Forbidden(c, "Administrator role required to change roles or activation")
		return
	}

	user, err := h.userService.PatchUser(id, services.PatchUserInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Roles:    req.Roles,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func canEditUser(c *gin.Context, targetID uint64) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	principalID, exists := middleware.GetUserID(c)
	return exists && principalID == targetID
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidFullName),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
