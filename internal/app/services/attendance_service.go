package services

import (
	"context"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// AttendanceService manages attendance records.
type AttendanceService struct {
	attendance repositories.IAttendanceRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendance repositories.IAttendanceRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance}
}

// Mark records attendance for a student on a date. The actor is stamped as
// the recorder; the stamp is never taken from the request body. The status
// defaults to present.
func (s *AttendanceService) Mark(ctx context.Context, actor *models.User, req *dto.CreateAttendanceRequest) (*models.Attendance, error) {
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "invalid date")
	}

	status := models.AttendanceStatus(req.Status)
	if status == "" {
		status = models.AttendancePresent
	}

	record := &models.Attendance{
		StudentID:      req.StudentID,
		ClassSubjectID: req.ClassSubjectID,
		Date:           date,
		Status:         status,
		Remarks:        req.Remarks,
		MarkedByID:     &actor.ID,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get retrieves an attendance record by ID.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.Attendance, error) {
	return s.attendance.GetByID(ctx, id)
}

// List retrieves attendance records matching the filter with the total count.
func (s *AttendanceService) List(ctx context.Context, filter *dto.AttendanceFilter, offset, limit uint64) ([]*models.Attendance, int64, error) {
	return s.list(ctx, repositories.AttendanceQuery{
		StudentID:      filter.StudentID,
		ClassSubjectID: filter.ClassSubjectID,
		Date:           filter.Date,
		Status:         filter.Status,
	}, offset, limit)
}

// ListByStudent retrieves one student's attendance records with the total
// count.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int64, offset, limit uint64) ([]*models.Attendance, int64, error) {
	return s.list(ctx, repositories.AttendanceQuery{StudentID: &studentID}, offset, limit)
}

// ListByClass retrieves attendance records of all subjects taught to one
// class with the total count.
func (s *AttendanceService) ListByClass(ctx context.Context, classID int64, offset, limit uint64) ([]*models.Attendance, int64, error) {
	return s.list(ctx, repositories.AttendanceQuery{ClassID: &classID}, offset, limit)
}

func (s *AttendanceService) list(ctx context.Context, query repositories.AttendanceQuery, offset, limit uint64) ([]*models.Attendance, int64, error) {
	records, err := s.attendance.List(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.attendance.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}

// Update applies a partial update to an attendance record. The original
// recorder stamp is preserved.
func (s *AttendanceService) Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	record, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StudentID != nil {
		record.StudentID = *req.StudentID
	}
	if req.ClassSubjectID != nil {
		record.ClassSubjectID = req.ClassSubjectID
	}
	if req.Date != nil {
		t, err := helpers.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date", "invalid date")
		}
		record.Date = t
	}
	if req.Status != nil {
		record.Status = models.AttendanceStatus(*req.Status)
	}
	if req.Remarks != nil {
		record.Remarks = req.Remarks
	}

	if err := s.attendance.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	return s.attendance.Delete(ctx, id)
}
