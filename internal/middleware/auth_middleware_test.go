package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

// stubUserRepo serves a single account by ID. The embedded interface covers
// the methods the middleware never touches.
type stubUserRepo struct {
	repositories.IUserRepository
	user *models.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		clone := *s.user
		return &clone, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newProtectedRouter(user *models.User, tokenExp time.Duration) (*gin.Engine, *auth.TokenService) {
	gin.SetMode(gin.TestMode)
	tokenService := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   "test-secret",
		TokenExp:    tokenExp,
		TokenIssuer: "test",
	})

	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokenService, &stubUserRepo{user: user}), func(c *gin.Context) {
		actor := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": actor.ID, "role": actor.Role})
	})
	return router, tokenService
}

func getProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func activeAccount() *models.User {
	return &models.User{ID: 5, Email: "meera@example.com", Role: models.RoleTeacher, IsActive: true}
}

func TestAuthMiddlewareAcceptsBearerAndTokenPrefixes(t *testing.T) {
	account := activeAccount()
	router, tokenService := newProtectedRouter(account, time.Hour)

	token, err := tokenService.GenerateToken(account)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + token, "Token " + token} {
		resp := getProtected(router, header)
		assert.Equal(t, http.StatusOK, resp.Code, "header %q", header)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router, _ := newProtectedRouter(activeAccount(), time.Hour)

	resp := getProtected(router, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, resp))
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	router, _ := newProtectedRouter(activeAccount(), time.Hour)

	resp := getProtected(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, resp))
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	account := activeAccount()
	router, tokenService := newProtectedRouter(account, -time.Minute)

	token, err := tokenService.GenerateToken(account)
	require.NoError(t, err)

	resp := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, errorCode(t, resp))
}

func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	account := activeAccount()
	router, tokenService := newProtectedRouter(nil, time.Hour)

	// A token for an account that no longer exists stops working.
	token, err := tokenService.GenerateToken(account)
	require.NoError(t, err)

	resp := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, errorCode(t, resp))
}

func TestAuthMiddlewareDisabledAccount(t *testing.T) {
	account := activeAccount()
	account.IsActive = false
	router, tokenService := newProtectedRouter(account, time.Hour)

	token, err := tokenService.GenerateToken(account)
	require.NoError(t, err)

	resp := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, resp))
}
