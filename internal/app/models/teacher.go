package models

import (
	"time"
)

// Teacher defines the teacher profile based on the 'teachers' table.
// Exactly one teacher row exists per teacher identity.
type Teacher struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	EmployeeID     string    `json:"employee_id" db:"employee_id"`
	DateOfJoining  time.Time `json:"date_of_joining" db:"date_of_joining"`
	Designation    string    `json:"designation" db:"designation"`
	Department     string    `json:"department" db:"department"`
	Qualification  *string   `json:"qualification" db:"qualification"`
	Experience     int       `json:"experience" db:"experience"`
	Specialization *string   `json:"specialization" db:"specialization"`
	DateOfBirth    time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender         string    `json:"gender" db:"gender"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsClassTeacher bool      `json:"is_class_teacher" db:"is_class_teacher"`
	Remarks        *string   `json:"remarks" db:"remarks"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
