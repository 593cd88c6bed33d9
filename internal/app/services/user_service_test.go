package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

func TestUserCreateDefaultsRoleAndHashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	user, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:    "priya@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "super-secret", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "super-secret"))
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	req := &dto.CreateUserRequest{Email: "priya@example.com", Password: "super-secret"}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestUserUpdatePatchesOnlyProvidedFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:     "priya@example.com",
		Password:  "super-secret",
		FirstName: "Priya",
		UserType:  "teacher",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateUserRequest{
		LastName: strPtr("Sharma"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Priya", updated.FirstName)
	assert.Equal(t, "Sharma", updated.LastName)
	assert.Equal(t, models.RoleTeacher, updated.Role)
	// Password untouched by the patch.
	assert.True(t, auth.CheckPassword(updated.Password, "super-secret"))
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)

	created, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Email:    "priya@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateUserRequest{
		Password: strPtr("even-more-secret"),
	})
	require.NoError(t, err)

	assert.False(t, auth.CheckPassword(updated.Password, "super-secret"))
	assert.True(t, auth.CheckPassword(updated.Password, "even-more-secret"))
}

func TestUserDeleteUnknown(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
