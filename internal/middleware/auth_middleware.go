package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

// CurrentUserKey is the context key holding the authenticated user.
const CurrentUserKey = "currentUser"

// AuthMiddleware validates the bearer token and loads the authenticated
// user into the request context. The user is re-read from storage on every
// request so role and staff changes take effect without reissuing tokens.
func AuthMiddleware(tokenService *auth.TokenService, users repositories.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "authentication required")
			return
		}

		tokenString, err := auth.ExtractBearerToken(header)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "invalid authorization header")
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "invalid token")
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "invalid token")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "account is disabled")
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the request context, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
