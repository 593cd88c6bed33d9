package models

import (
	"time"
)

// Role is the role tag carried by every identity.
type Role string

const (
	// RoleAdmin marks administrative accounts.
	RoleAdmin Role = "admin"
	// RoleTeacher marks teaching staff accounts.
	RoleTeacher Role = "teacher"
	// RoleStudent marks student accounts.
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User defines the identity model based on the 'users' table.
// Password is the bcrypt hash and is never serialized.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Password    string    `json:"-" db:"password"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Address     string    `json:"address" db:"address"`
	Role        Role      `json:"user_type" db:"role"`
	IsStaff     bool      `json:"is_staff" db:"is_staff"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsTeacher reports whether the identity carries the teacher role.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
