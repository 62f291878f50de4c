package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/soldoshop/upn-nalog/internal/application/service"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/dto/request"
	"github.com/soldoshop/upn-nalog/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles operator login
// @Summary Issue token
// @Description Authenticate the operator and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.TokenRequest true "Operator credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req request.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token": output.AccessToken,
		"expires_at":   output.ExpiresAt,
		"token_type":   "Bearer",
	})
}
