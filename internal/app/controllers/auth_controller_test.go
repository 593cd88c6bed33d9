package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

// stubUserRepo serves a single account by email. The embedded interface
// covers the methods the token endpoint never touches.
type stubUserRepo struct {
	repositories.IUserRepository
	user *models.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		clone := *s.user
		return &clone, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newTokenEndpoint(t *testing.T, user *models.User) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenService := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
	ctrl := NewAuthController(services.NewAuthService(&stubUserRepo{user: user}, tokenService))

	router := gin.New()
	router.POST("/api-token-auth/", ctrl.ObtainToken)
	return router, tokenService
}

func tokenAccount(t *testing.T, password string, active bool) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:       12,
		Email:    "meera@example.com",
		Password: hashed,
		Role:     models.RoleTeacher,
		IsActive: active,
	}
}

func postToken(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api-token-auth/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestObtainTokenSuccess(t *testing.T) {
	account := tokenAccount(t, "correct-horse", true)
	router, tokenService := newTokenEndpoint(t, account)

	resp := postToken(router, `{"email": "meera@example.com", "password": "correct-horse"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	var body dto.ObtainTokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.UserID)
	assert.Equal(t, "meera@example.com", body.Email)

	claims, err := tokenService.ValidateToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
}

func TestObtainTokenMissingFields(t *testing.T) {
	router, _ := newTokenEndpoint(t, tokenAccount(t, "correct-horse", true))

	for _, body := range []string{
		`{}`,
		`{"email": "meera@example.com"}`,
		`{"password": "correct-horse"}`,
		`not even json`,
	} {
		resp := postToken(router, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"error": "Please provide both email and password"}`, resp.Body.String())
	}
}

func TestObtainTokenInvalidCredentials(t *testing.T) {
	router, _ := newTokenEndpoint(t, tokenAccount(t, "correct-horse", true))

	// Wrong password and unknown email produce identical responses.
	for _, body := range []string{
		`{"email": "meera@example.com", "password": "wrong-horse"}`,
		`{"email": "nobody@example.com", "password": "correct-horse"}`,
	} {
		resp := postToken(router, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"error": "Invalid credentials"}`, resp.Body.String())
	}
}

func TestObtainTokenDisabledAccount(t *testing.T) {
	router, _ := newTokenEndpoint(t, tokenAccount(t, "correct-horse", false))

	// Disabled accounts are indistinguishable from bad credentials.
	resp := postToken(router, `{"email": "meera@example.com", "password": "correct-horse"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error": "Invalid credentials"}`, resp.Body.String())
}
