package models

import (
	"time"
)

// AttendanceStatus enumerates the recordable attendance states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Valid reports whether the status is a known attendance state.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// Attendance is a dated observation for a student, optionally scoped to a
// class subject. MarkedByID records the identity that wrote the record and
// survives that identity's deletion as NULL.
type Attendance struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"student" db:"student_id"`
	ClassSubjectID *int64           `json:"class_subject" db:"class_subject_id"`
	Date           time.Time        `json:"date" db:"date"`
	Status         AttendanceStatus `json:"status" db:"status"`
	Remarks        *string          `json:"remarks" db:"remarks"`
	MarkedByID     *int64           `json:"marked_by" db:"marked_by_id"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	Student      *Student      `json:"student_details,omitempty"`
	ClassSubject *ClassSubject `json:"class_subject_details,omitempty"`
	MarkedBy     *User         `json:"marked_by_details,omitempty"`
}
