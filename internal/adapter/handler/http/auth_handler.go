package http

import (
	"net/http"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  *services.AuthService
	tokenService ports.TokenService
	logger       ports.LoggerPort
}

type LoginRequest struct {
	UserID   string `json:"user_id" binding:"required" example:"u123"`
	Password string `json:"password" binding:"required" example:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

func NewAuthHandler(
	authService *services.AuthService,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// @Summary Log in
// @Description Checks credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Logged in"
// @Failure 400 {object} errorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in login", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, ok := h.authService.Login(c.Request.Context(), domain.LoginRequest{
		UserID:   req.UserID,
		Password: req.Password,
	}, c.ClientIP())
	if !ok {
		newErrorResponse(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.tokenService.CreateToken(user)
	if err != nil {
		h.logger.Error("Failed to create token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:  token,
		UserID: user.ID,
		Role:   string(user.Role),
	})
}
