package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/middleware"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
)

// AuthController serves the token endpoint.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// ObtainToken exchanges an email and password for a bearer token. The
// response shapes are fixed wire contracts consumed by existing clients, so
// they bypass the standard envelopes.
func (ctrl *AuthController) ObtainToken(c *gin.Context) {
	var req dto.ObtainTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both email and password"})
		return
	}

	user, token, err := ctrl.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) || errors.Is(err, apperrors.ErrAccountDisabled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
			return
		}
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ObtainTokenResponse{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
	})
}
