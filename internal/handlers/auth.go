package handlers

import (
	"net/http"

	"github.com/omkar-107/opine-bot-sub000/internal/middleware"
	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@university.edu"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type UserResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password; sets the identity cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} UserResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.IdentityCookie, token, 24*60*60, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": UserResponse{
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
	}})
}

// Logout godoc
// @Summary      Log out
// @Description  Clear the identity cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.IdentityCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary      Current user
// @Description  Return the identity decoded from the cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": UserResponse{
		Email:    c.GetString("email"),
		Username: c.GetString("username"),
		Role:     c.GetString("role"),
	}})
}
