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

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login verifies credentials and returns a signed token carrying the user's
// claims. A deactivated account is refused with an access-denied response
// even when the password matches.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			apierrors.InvalidCredentials(c, err.Error())
		case errors.Is(err, services.ErrUserInactive):
			apierrors.AccessDenied(c, err.Error())
		default:
			apierrors.InternalError(c, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  dto.ToUserDTO(*user),
	})
}

// GetCurrentUser returns the authenticated principal.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
