package dto

// CreateAttendanceRequest records attendance for a student on a date.
// The recording identity is stamped server-side, never taken from the body.
type CreateAttendanceRequest struct {
	StudentID      int64   `json:"student" binding:"required"`
	ClassSubjectID *int64  `json:"class_subject"`
	Date           string  `json:"date" binding:"required,datetime=2006-01-02"`
	Status         string  `json:"status" binding:"omitempty,oneof=present absent late excused"`
	Remarks        *string `json:"remarks"`
}

// UpdateAttendanceRequest patches an attendance record.
type UpdateAttendanceRequest struct {
	StudentID      *int64  `json:"student"`
	ClassSubjectID *int64  `json:"class_subject"`
	Date           *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Status         *string `json:"status" binding:"omitempty,oneof=present absent late excused"`
	Remarks        *string `json:"remarks"`
}

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	StudentID      *int64
	ClassSubjectID *int64
	Date           *string
	Status         *string
}
