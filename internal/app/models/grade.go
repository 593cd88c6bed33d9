package models

import (
	"time"
)

// ExamType categorises exams, e.g. "Mid-term", "Final", "Quiz".
type ExamType struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Exam is a scheduled examination of a subject for a class.
type Exam struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ExamTypeID   int64     `json:"exam_type" db:"exam_type_id"`
	ClassID      int64     `json:"class_obj" db:"class_id"`
	SubjectID    int64     `json:"subject" db:"subject_id"`
	Date         time.Time `json:"date" db:"date"`
	TotalMarks   int       `json:"total_marks" db:"total_marks"`
	PassingMarks int       `json:"passing_marks" db:"passing_marks"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	ExamType *ExamType `json:"exam_type_details,omitempty"`
	Class    *Class    `json:"class_details,omitempty"`
	Subject  *Subject  `json:"subject_details,omitempty"`
}

// Grade is a measurement for a student on an exam. At most one grade exists
// per (student, exam) pair. GradedByID records the identity that wrote the
// record and survives that identity's deletion as NULL.
type Grade struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"student" db:"student_id"`
	ExamID        int64     `json:"exam" db:"exam_id"`
	MarksObtained float64   `json:"marks_obtained" db:"marks_obtained"`
	Remarks       *string   `json:"remarks" db:"remarks"`
	GradedByID    *int64    `json:"graded_by" db:"graded_by_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	Student  *Student `json:"student_details,omitempty"`
	Exam     *Exam    `json:"exam_details,omitempty"`
	GradedBy *User    `json:"graded_by_details,omitempty"`
}

// Percentage computes the obtained share of the exam's total marks.
// Derived on every read, never stored.
func (g *Grade) Percentage(exam *Exam) float64 {
	if exam == nil || exam.TotalMarks == 0 {
		return 0
	}
	return g.MarksObtained / float64(exam.TotalMarks) * 100
}

// IsPass reports whether the obtained marks reach the exam's passing marks.
// Derived on every read, never stored.
func (g *Grade) IsPass(exam *Exam) bool {
	if exam == nil {
		return false
	}
	return g.MarksObtained >= float64(exam.PassingMarks)
}
