package services

import (
	"context"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// Exam mark defaults applied when a request omits them.
const (
	DefaultTotalMarks   = 100
	DefaultPassingMarks = 35
)

// ExamService manages exam types and scheduled exams.
type ExamService struct {
	examTypes repositories.IExamTypeRepository
	exams     repositories.IExamRepository
}

// NewExamService creates a new ExamService.
func NewExamService(examTypes repositories.IExamTypeRepository, exams repositories.IExamRepository) *ExamService {
	return &ExamService{examTypes: examTypes, exams: exams}
}

// CreateExamType creates an exam type.
func (s *ExamService) CreateExamType(ctx context.Context, req *dto.CreateExamTypeRequest) (*models.ExamType, error) {
	examType := &models.ExamType{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.examTypes.Create(ctx, examType); err != nil {
		return nil, err
	}
	return examType, nil
}

// GetExamType retrieves an exam type by ID.
func (s *ExamService) GetExamType(ctx context.Context, id int64) (*models.ExamType, error) {
	return s.examTypes.GetByID(ctx, id)
}

// ListExamTypes retrieves a page of exam types with the total count.
func (s *ExamService) ListExamTypes(ctx context.Context, offset, limit uint64) ([]*models.ExamType, int64, error) {
	examTypes, err := s.examTypes.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.examTypes.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return examTypes, count, nil
}

// UpdateExamType applies a partial update to an exam type.
func (s *ExamService) UpdateExamType(ctx context.Context, id int64, req *dto.UpdateExamTypeRequest) (*models.ExamType, error) {
	examType, err := s.examTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		examType.Name = *req.Name
	}
	if req.Description != nil {
		examType.Description = req.Description
	}

	if err := s.examTypes.Update(ctx, examType); err != nil {
		return nil, err
	}
	return examType, nil
}

// DeleteExamType removes an exam type and its exams.
func (s *ExamService) DeleteExamType(ctx context.Context, id int64) error {
	return s.examTypes.Delete(ctx, id)
}

// CreateExam schedules an exam. Total marks default to 100 and passing marks
// to 35 when omitted.
func (s *ExamService) CreateExam(ctx context.Context, req *dto.CreateExamRequest) (*models.Exam, error) {
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date", "invalid date")
	}

	totalMarks := DefaultTotalMarks
	if req.TotalMarks != nil {
		totalMarks = *req.TotalMarks
	}
	passingMarks := DefaultPassingMarks
	if req.PassingMarks != nil {
		passingMarks = *req.PassingMarks
	}
	if passingMarks > totalMarks {
		return nil, apperrors.NewValidationError("passing_marks", "passing marks cannot exceed total marks")
	}

	exam := &models.Exam{
		Name:         req.Name,
		ExamTypeID:   req.ExamTypeID,
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		Date:         date,
		TotalMarks:   totalMarks,
		PassingMarks: passingMarks,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// GetExam retrieves an exam by ID.
func (s *ExamService) GetExam(ctx context.Context, id int64) (*models.Exam, error) {
	return s.exams.GetByID(ctx, id)
}

// ListExams retrieves a page of exams with the total count.
func (s *ExamService) ListExams(ctx context.Context, offset, limit uint64) ([]*models.Exam, int64, error) {
	exams, err := s.exams.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.exams.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return exams, count, nil
}

// UpdateExam applies a partial update to an exam.
func (s *ExamService) UpdateExam(ctx context.Context, id int64, req *dto.UpdateExamRequest) (*models.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.ExamTypeID != nil {
		exam.ExamTypeID = *req.ExamTypeID
	}
	if req.ClassID != nil {
		exam.ClassID = *req.ClassID
	}
	if req.SubjectID != nil {
		exam.SubjectID = *req.SubjectID
	}
	if req.Date != nil {
		t, err := helpers.ParseDate(*req.Date)
		if err != nil {
			return nil, apperrors.NewValidationError("date", "invalid date")
		}
		exam.Date = t
	}
	if req.TotalMarks != nil {
		exam.TotalMarks = *req.TotalMarks
	}
	if req.PassingMarks != nil {
		exam.PassingMarks = *req.PassingMarks
	}
	if exam.PassingMarks > exam.TotalMarks {
		return nil, apperrors.NewValidationError("passing_marks", "passing marks cannot exceed total marks")
	}

	if err := s.exams.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// DeleteExam removes an exam and its grades.
func (s *ExamService) DeleteExam(ctx context.Context, id int64) error {
	return s.exams.Delete(ctx, id)
}
