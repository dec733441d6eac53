package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opencourses/backend/internal/services"
	"github.com/opencourses/backend/internal/types"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	if err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.FullName); err != nil {
		if errors.Is(err, types.ErrEmailTaken) {
			RespondError(c, http.StatusBadRequest, "email_taken", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "register_failed", err)
		return
	}
	RespondOK(c, gin.H{"message": "user registered successfully"})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "login_failed", err)
		return
	}

	expiresIn := int(h.authService.AccessTTL().Seconds())
	RespondOK(c, gin.H{"token": token, "expires_in": expiresIn})
}
