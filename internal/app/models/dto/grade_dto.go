package dto

import (
	"github.com/medhashaala/erp/internal/app/models"
)

// CreateExamTypeRequest creates an exam type.
type CreateExamTypeRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateExamTypeRequest patches an exam type.
type UpdateExamTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateExamRequest schedules an exam.
type CreateExamRequest struct {
	Name         string `json:"name" binding:"required"`
	ExamTypeID   int64  `json:"exam_type" binding:"required"`
	ClassID      int64  `json:"class_obj" binding:"required"`
	SubjectID    int64  `json:"subject" binding:"required"`
	Date         string `json:"date" binding:"required,datetime=2006-01-02"`
	TotalMarks   *int   `json:"total_marks" binding:"omitempty,gte=1"`
	PassingMarks *int   `json:"passing_marks" binding:"omitempty,gte=0"`
}

// UpdateExamRequest patches an exam.
type UpdateExamRequest struct {
	Name         *string `json:"name"`
	ExamTypeID   *int64  `json:"exam_type"`
	ClassID      *int64  `json:"class_obj"`
	SubjectID    *int64  `json:"subject"`
	Date         *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	TotalMarks   *int    `json:"total_marks" binding:"omitempty,gte=1"`
	PassingMarks *int    `json:"passing_marks" binding:"omitempty,gte=0"`
}

// CreateGradeRequest records marks for a student on an exam.
// The recording identity is stamped server-side, never taken from the body.
type CreateGradeRequest struct {
	StudentID     int64   `json:"student" binding:"required"`
	ExamID        int64   `json:"exam" binding:"required"`
	MarksObtained float64 `json:"marks_obtained" binding:"gte=0"`
	Remarks       *string `json:"remarks"`
}

// UpdateGradeRequest patches a grade.
type UpdateGradeRequest struct {
	StudentID     *int64   `json:"student"`
	ExamID        *int64   `json:"exam"`
	MarksObtained *float64 `json:"marks_obtained" binding:"omitempty,gte=0"`
	Remarks       *string  `json:"remarks"`
}

// GradeResponse is a grade with its derived projections. Percentage and
// pass state are recomputed from the exam on every read, never stored.
type GradeResponse struct {
	*models.Grade
	Percentage float64 `json:"percentage"`
	IsPass     bool    `json:"is_pass"`
}

// NewGradeResponse computes the read-only projections for a grade. The
// grade's Exam relation must be populated.
func NewGradeResponse(grade *models.Grade) *GradeResponse {
	return &GradeResponse{
		Grade:      grade,
		Percentage: grade.Percentage(grade.Exam),
		IsPass:     grade.IsPass(grade.Exam),
	}
}

// NewGradeResponses maps a grade list to responses with projections.
func NewGradeResponses(grades []*models.Grade) []*GradeResponse {
	responses := make([]*GradeResponse, len(grades))
	for i, g := range grades {
		responses[i] = NewGradeResponse(g)
	}
	return responses
}
