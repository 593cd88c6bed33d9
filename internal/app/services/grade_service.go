package services

import (
	"context"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
)

// GradeService manages exam grades. Every read carries the derived
// percentage and pass projections, recomputed from the exam on the fly.
type GradeService struct {
	grades repositories.IGradeRepository
}

// NewGradeService creates a new GradeService.
func NewGradeService(grades repositories.IGradeRepository) *GradeService {
	return &GradeService{grades: grades}
}

// Record writes a grade for a student on an exam. The actor is stamped as
// the grader; the stamp is never taken from the request body.
func (s *GradeService) Record(ctx context.Context, actor *models.User, req *dto.CreateGradeRequest) (*dto.GradeResponse, error) {
	grade := &models.Grade{
		StudentID:     req.StudentID,
		ExamID:        req.ExamID,
		MarksObtained: req.MarksObtained,
		Remarks:       req.Remarks,
		GradedByID:    &actor.ID,
	}
	if err := s.grades.Create(ctx, grade); err != nil {
		return nil, err
	}
	// Re-read to populate the exam for the projections.
	created, err := s.grades.GetByID(ctx, grade.ID)
	if err != nil {
		return nil, err
	}
	return dto.NewGradeResponse(created), nil
}

// Get retrieves a grade by ID with its projections.
func (s *GradeService) Get(ctx context.Context, id int64) (*dto.GradeResponse, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewGradeResponse(grade), nil
}

// List retrieves a page of grades with projections and the total count.
func (s *GradeService) List(ctx context.Context, offset, limit uint64) ([]*dto.GradeResponse, int64, error) {
	return s.list(ctx, repositories.GradeQuery{}, offset, limit)
}

// ListByStudent retrieves one student's grades with the total count.
func (s *GradeService) ListByStudent(ctx context.Context, studentID int64, offset, limit uint64) ([]*dto.GradeResponse, int64, error) {
	return s.list(ctx, repositories.GradeQuery{StudentID: &studentID}, offset, limit)
}

// ListByClass retrieves the grades of all exams held for one class with the
// total count.
func (s *GradeService) ListByClass(ctx context.Context, classID int64, offset, limit uint64) ([]*dto.GradeResponse, int64, error) {
	return s.list(ctx, repositories.GradeQuery{ClassID: &classID}, offset, limit)
}

// ListByExam retrieves all grades recorded for one exam with the total count.
func (s *GradeService) ListByExam(ctx context.Context, examID int64, offset, limit uint64) ([]*dto.GradeResponse, int64, error) {
	return s.list(ctx, repositories.GradeQuery{ExamID: &examID}, offset, limit)
}

func (s *GradeService) list(ctx context.Context, query repositories.GradeQuery, offset, limit uint64) ([]*dto.GradeResponse, int64, error) {
	grades, err := s.grades.List(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.grades.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return dto.NewGradeResponses(grades), count, nil
}

// Update applies a partial update to a grade. The original grader stamp is
// preserved.
func (s *GradeService) Update(ctx context.Context, id int64, req *dto.UpdateGradeRequest) (*dto.GradeResponse, error) {
	grade, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StudentID != nil {
		grade.StudentID = *req.StudentID
	}
	if req.ExamID != nil {
		grade.ExamID = *req.ExamID
	}
	if req.MarksObtained != nil {
		grade.MarksObtained = *req.MarksObtained
	}
	if req.Remarks != nil {
		grade.Remarks = req.Remarks
	}

	if err := s.grades.Update(ctx, grade); err != nil {
		return nil, err
	}
	updated, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewGradeResponse(updated), nil
}

// Delete removes a grade.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	return s.grades.Delete(ctx, id)
}
