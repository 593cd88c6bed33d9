package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
)

func TestAttendanceMarkStampsRecorderAndDefaultsStatus(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	actor := &models.User{ID: 7, Role: models.RoleTeacher}

	record, err := svc.Mark(context.Background(), actor, &dto.CreateAttendanceRequest{
		StudentID: 1,
		Date:      "2025-07-01",
	})
	require.NoError(t, err)

	require.NotNil(t, record.MarkedByID)
	assert.Equal(t, int64(7), *record.MarkedByID)
	assert.Equal(t, models.AttendancePresent, record.Status)
}

func TestAttendanceMarkRejectsDuplicate(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	actor := &models.User{ID: 7, Role: models.RoleTeacher}

	req := &dto.CreateAttendanceRequest{
		StudentID:      1,
		ClassSubjectID: int64Ptr(3),
		Date:           "2025-07-01",
		Status:         "absent",
	}
	_, err := svc.Mark(context.Background(), actor, req)
	require.NoError(t, err)

	_, err = svc.Mark(context.Background(), actor, req)
	assert.ErrorIs(t, err, apperrors.ErrAttendanceAlreadyMarked)
}

func TestAttendanceMarkRejectsInvalidDate(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	actor := &models.User{ID: 7, Role: models.RoleTeacher}

	_, err := svc.Mark(context.Background(), actor, &dto.CreateAttendanceRequest{
		StudentID: 1,
		Date:      "01/07/2025",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAttendanceUpdatePreservesRecorderStamp(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	recorder := &models.User{ID: 7, Role: models.RoleTeacher}

	record, err := svc.Mark(context.Background(), recorder, &dto.CreateAttendanceRequest{
		StudentID: 1,
		Date:      "2025-07-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), record.ID, &dto.UpdateAttendanceRequest{
		Status:  strPtr("late"),
		Remarks: strPtr("arrived after roll call"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceLate, updated.Status)

	// Edits never reassign the original recorder.
	stored, err := svc.Get(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MarkedByID)
	assert.Equal(t, int64(7), *stored.MarkedByID)
}

func TestAttendanceListFilters(t *testing.T) {
	svc := NewAttendanceService(newFakeAttendanceRepo())
	actor := &models.User{ID: 7, Role: models.RoleTeacher}

	for _, req := range []*dto.CreateAttendanceRequest{
		{StudentID: 1, Date: "2025-07-01", Status: "present"},
		{StudentID: 1, Date: "2025-07-02", Status: "absent"},
		{StudentID: 2, Date: "2025-07-01", Status: "present"},
	} {
		_, err := svc.Mark(context.Background(), actor, req)
		require.NoError(t, err)
	}

	records, count, err := svc.ListByStudent(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int64(2), count)

	records, count, err = svc.List(context.Background(), &dto.AttendanceFilter{Status: strPtr("absent")}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(1), records[0].StudentID)

	records, count, err = svc.List(context.Background(), &dto.AttendanceFilter{Date: strPtr("2025-07-01")}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int64(2), count)
}
