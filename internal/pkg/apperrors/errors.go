package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound              = errors.New("student not found")
	ErrAdmissionNumberAlreadyExists = errors.New("admission number already exists")
)

// Teacher errors
var (
	ErrTeacherNotFound         = errors.New("teacher not found")
	ErrEmployeeIDAlreadyExists = errors.New("employee ID already exists")
)

// Organisational entity errors
var (
	ErrAcademicYearNotFound      = errors.New("academic year not found")
	ErrAcademicYearAlreadyExists = errors.New("academic year with this name already exists")
	ErrClassNotFound             = errors.New("class not found")
	ErrClassAlreadyExists        = errors.New("class with this name already exists for the academic year")
	ErrSubjectNotFound           = errors.New("subject not found")
	ErrSubjectCodeAlreadyExists  = errors.New("subject code already exists")
	ErrClassSubjectNotFound      = errors.New("class subject not found")
	ErrClassSubjectAlreadyExists = errors.New("subject is already assigned to this class")
)

// Fact record errors
var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this student, subject and date")
	ErrExamTypeNotFound        = errors.New("exam type not found")
	ErrExamNotFound            = errors.New("exam not found")
	ErrGradeNotFound           = errors.New("grade not found")
	ErrGradeAlreadyRecorded    = errors.New("grade already recorded for this student and exam")
)

// CustomError carries an error kind together with request-specific context.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) error {
	return &CustomError{Err: ErrValidationFailed, Field: field, Message: message}
}

// NewConflictError creates a uniqueness-violation error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
