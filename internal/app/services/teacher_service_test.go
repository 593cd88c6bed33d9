package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
)

func newTeacherServiceFixture() (*TeacherService, *fakeUserRepo, *fakeTeacherRepo, *fakeTxRunner) {
	users := newFakeUserRepo()
	teachers := newFakeTeacherRepo(users)
	txRunner := &fakeTxRunner{stores: []restorable{users, teachers}}
	return NewTeacherService(teachers, users, txRunner), users, teachers, txRunner
}

func enrollTeacherRequest() *dto.CreateTeacherRequest {
	return &dto.CreateTeacherRequest{
		User: &dto.NestedUserPayload{
			Email:     "vikram.iyer@example.com",
			Password:  "chalk-and-talk",
			FirstName: "Vikram",
			LastName:  "Iyer",
		},
		EmployeeID:    "EMP-2025-007",
		DateOfJoining: "2025-06-15",
		Designation:   "Senior Teacher",
		Department:    "Mathematics",
		DateOfBirth:   "1985-11-02",
		Gender:        "male",
	}
}

func TestTeacherEnrollCreatesIdentityAndProfile(t *testing.T) {
	svc, _, teachers, txRunner := newTeacherServiceFixture()

	teacher, err := svc.Enroll(context.Background(), enrollTeacherRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, txRunner.runs)
	require.NotNil(t, teacher.User)
	assert.Equal(t, models.RoleTeacher, teacher.User.Role)
	assert.Equal(t, teacher.User.ID, teacher.UserID)

	_, err = teachers.GetByUserID(context.Background(), teacher.UserID)
	assert.NoError(t, err)
}

func TestTeacherEnrollRollsBackIdentityOnProfileFailure(t *testing.T) {
	svc, users, teachers, _ := newTeacherServiceFixture()
	teachers.failCreate = errors.New("insert failed")

	_, err := svc.Enroll(context.Background(), enrollTeacherRequest())
	require.Error(t, err)

	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTeacherEnrollRejectsDuplicateEmployeeID(t *testing.T) {
	svc, _, _, _ := newTeacherServiceFixture()

	_, err := svc.Enroll(context.Background(), enrollTeacherRequest())
	require.NoError(t, err)

	req := enrollTeacherRequest()
	req.User.Email = "other@example.com"
	_, err = svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmployeeIDAlreadyExists)
}

func TestTeacherEnrollRejectsMismatchedIdentityRole(t *testing.T) {
	svc, users, teachers, _ := newTeacherServiceFixture()

	existing := &models.User{Email: "ravi@example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, users.Create(context.Background(), existing))

	req := enrollTeacherRequest()
	req.User = nil
	req.UserID = &existing.ID
	_, err := svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	count, err := teachers.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTeacherUpdatePatchesProfile(t *testing.T) {
	svc, _, _, _ := newTeacherServiceFixture()

	created, err := svc.Enroll(context.Background(), enrollTeacherRequest())
	require.NoError(t, err)

	yes := true
	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateTeacherRequest{
		Designation:    strPtr("Head of Department"),
		IsClassTeacher: &yes,
	})
	require.NoError(t, err)

	assert.Equal(t, "Head of Department", updated.Designation)
	assert.True(t, updated.IsClassTeacher)
	assert.Equal(t, "EMP-2025-007", updated.EmployeeID)
}
