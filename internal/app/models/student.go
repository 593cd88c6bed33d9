package models

import (
	"time"
)

// Student defines the student profile based on the 'students' table.
// Exactly one student row exists per student identity.
type Student struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	AdmissionNumber string    `json:"admission_number" db:"admission_number"`
	RollNumber      *string   `json:"roll_number" db:"roll_number"`
	DateOfAdmission time.Time `json:"date_of_admission" db:"date_of_admission"`
	DateOfBirth     time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender          string    `json:"gender" db:"gender"`
	BloodGroup      *string   `json:"blood_group" db:"blood_group"`
	ParentName      *string   `json:"parent_name" db:"parent_name"`
	ParentPhone     *string   `json:"parent_phone" db:"parent_phone"`
	ParentEmail     *string   `json:"parent_email" db:"parent_email"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CurrentClassID  *int64    `json:"current_class" db:"current_class_id"`
	CurrentSection  *string   `json:"current_section" db:"current_section"`
	PreviousSchool  *string   `json:"previous_school" db:"previous_school"`
	Remarks         *string   `json:"remarks" db:"remarks"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
