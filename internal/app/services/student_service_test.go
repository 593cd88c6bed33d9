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
	"github.com/medhashaala/erp/internal/pkg/auth"
)

func newStudentServiceFixture() (*StudentService, *fakeUserRepo, *fakeStudentRepo, *fakeTxRunner) {
	users := newFakeUserRepo()
	students := newFakeStudentRepo(users)
	txRunner := &fakeTxRunner{stores: []restorable{users, students}}
	return NewStudentService(students, users, txRunner), users, students, txRunner
}

func enrollStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		User: &dto.NestedUserPayload{
			Email:     "asha.rao@example.com",
			Password:  "s3cret-pass",
			FirstName: "Asha",
			LastName:  "Rao",
		},
		AdmissionNumber: "ADM-2025-001",
		DateOfAdmission: "2025-06-01",
		DateOfBirth:     "2012-03-15",
		Gender:          "female",
	}
}

func TestStudentEnrollCreatesIdentityAndProfile(t *testing.T) {
	svc, users, students, txRunner := newStudentServiceFixture()

	student, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, txRunner.runs)
	assert.NotZero(t, student.ID)
	require.NotNil(t, student.User)
	assert.Equal(t, student.User.ID, student.UserID)
	assert.Equal(t, models.RoleStudent, student.User.Role)
	assert.True(t, student.IsActive)

	stored, err := users.GetByEmail(context.Background(), "asha.rao@example.com")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.Password, "s3cret-pass"))

	_, err = students.GetByUserID(context.Background(), stored.ID)
	assert.NoError(t, err)
}

func TestStudentEnrollGeneratesPasswordWhenEmpty(t *testing.T) {
	svc, users, _, _ := newStudentServiceFixture()

	req := enrollStudentRequest()
	req.User.Password = ""
	_, err := svc.Enroll(context.Background(), req)
	require.NoError(t, err)

	stored, err := users.GetByEmail(context.Background(), req.User.Email)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Password)
	// The account must not authenticate with an empty password.
	assert.False(t, auth.CheckPassword(stored.Password, ""))
}

func TestStudentEnrollRollsBackIdentityOnProfileFailure(t *testing.T) {
	svc, users, students, _ := newStudentServiceFixture()
	students.failCreate = errors.New("insert failed")

	_, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.Error(t, err)

	// The identity written inside the failed transaction must be gone.
	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStudentEnrollRequiresExactlyOneIdentitySource(t *testing.T) {
	svc, _, _, _ := newStudentServiceFixture()

	req := enrollStudentRequest()
	req.User = nil
	_, err := svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = enrollStudentRequest()
	req.UserID = int64Ptr(1)
	_, err = svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStudentEnrollRejectsDuplicateAdmissionNumber(t *testing.T) {
	svc, users, _, _ := newStudentServiceFixture()

	_, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.NoError(t, err)

	req := enrollStudentRequest()
	req.User.Email = "other@example.com"
	_, err = svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrAdmissionNumberAlreadyExists)

	// The conflict is detected before any identity is written.
	count, err := users.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStudentEnrollRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newStudentServiceFixture()

	_, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.NoError(t, err)

	req := enrollStudentRequest()
	req.AdmissionNumber = "ADM-2025-002"
	_, err = svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestStudentEnrollWithExistingIdentity(t *testing.T) {
	svc, users, _, txRunner := newStudentServiceFixture()

	existing := &models.User{Email: "ravi@example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, users.Create(context.Background(), existing))

	req := enrollStudentRequest()
	req.User = nil
	req.UserID = &existing.ID
	student, err := svc.Enroll(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, student.UserID)
	// Only the profile is written, no transaction needed.
	assert.Zero(t, txRunner.runs)
}

func TestStudentEnrollRejectsMismatchedIdentityRole(t *testing.T) {
	svc, users, students, _ := newStudentServiceFixture()

	existing := &models.User{Email: "meera@example.com", Role: models.RoleTeacher, IsActive: true}
	require.NoError(t, users.Create(context.Background(), existing))

	req := enrollStudentRequest()
	req.User = nil
	req.UserID = &existing.ID
	_, err := svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// No profile may be bound to an identity of another role.
	count, err := students.Count(context.Background(), false)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStudentEnrollWithUnknownIdentity(t *testing.T) {
	svc, _, _, _ := newStudentServiceFixture()

	req := enrollStudentRequest()
	req.User = nil
	req.UserID = int64Ptr(999)
	_, err := svc.Enroll(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestStudentUpdatePatchesProfile(t *testing.T) {
	svc, _, _, _ := newStudentServiceFixture()

	created, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateStudentRequest{
		CurrentSection: strPtr("B"),
		RollNumber:     strPtr("17"),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.CurrentSection)
	assert.Equal(t, "B", *updated.CurrentSection)
	require.NotNil(t, updated.RollNumber)
	assert.Equal(t, "17", *updated.RollNumber)
	// Untouched fields survive the patch.
	assert.Equal(t, "ADM-2025-001", updated.AdmissionNumber)
}

func TestStudentUpdateNestedIdentityCommitsAtomically(t *testing.T) {
	svc, users, students, txRunner := newStudentServiceFixture()

	created, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.NoError(t, err)
	enrollRuns := txRunner.runs

	updated, err := svc.Update(context.Background(), created.ID, &dto.UpdateStudentRequest{
		User: &dto.NestedUserPatch{Email: strPtr("asha.new@example.com")},
	})
	require.NoError(t, err)
	assert.Equal(t, enrollRuns+1, txRunner.runs)
	assert.Equal(t, "asha.new@example.com", updated.User.Email)

	// Identity patch rolls back when the profile write fails.
	students.failUpdate = errors.New("update failed")
	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateStudentRequest{
		User: &dto.NestedUserPatch{Email: strPtr("asha.newer@example.com")},
	})
	require.Error(t, err)

	stored, err := users.GetByID(context.Background(), created.UserID)
	require.NoError(t, err)
	assert.Equal(t, "asha.new@example.com", stored.Email)
}

func TestStudentUpdateUnknown(t *testing.T) {
	svc, _, _, _ := newStudentServiceFixture()

	_, err := svc.Update(context.Background(), 42, &dto.UpdateStudentRequest{})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentListActiveOnly(t *testing.T) {
	svc, _, _, _ := newStudentServiceFixture()

	_, err := svc.Enroll(context.Background(), enrollStudentRequest())
	require.NoError(t, err)

	inactive := enrollStudentRequest()
	inactive.User.Email = "dormant@example.com"
	inactive.AdmissionNumber = "ADM-2025-002"
	no := false
	inactive.IsActive = &no
	_, err = svc.Enroll(context.Background(), inactive)
	require.NoError(t, err)

	all, total, err := svc.List(context.Background(), false, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), total)

	active, total, err := svc.List(context.Background(), true, 0, 10)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ADM-2025-001", active[0].AdmissionNumber)
}
