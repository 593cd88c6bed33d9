package dto

// CreateTeacherRequest enrolls a teacher (staff only). Either User (nested
// identity, created atomically with the profile) or UserID (existing
// identity) must be provided.
type CreateTeacherRequest struct {
	User   *NestedUserPayload `json:"user"`
	UserID *int64             `json:"user_id"`

	EmployeeID     string  `json:"employee_id" binding:"required"`
	DateOfJoining  string  `json:"date_of_joining" binding:"required,datetime=2006-01-02"`
	Designation    string  `json:"designation" binding:"required"`
	Department     string  `json:"department" binding:"required"`
	Qualification  *string `json:"qualification"`
	Experience     int     `json:"experience" binding:"omitempty,gte=0"`
	Specialization *string `json:"specialization"`
	DateOfBirth    string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender         string  `json:"gender" binding:"required,oneof=male female other"`
	IsActive       *bool   `json:"is_active"`
	IsClassTeacher bool    `json:"is_class_teacher"`
	Remarks        *string `json:"remarks"`
}

// UpdateTeacherRequest patches a teacher profile, optionally together with
// its identity. Both patches apply atomically.
type UpdateTeacherRequest struct {
	User *NestedUserPatch `json:"user"`

	EmployeeID     *string `json:"employee_id"`
	DateOfJoining  *string `json:"date_of_joining" binding:"omitempty,datetime=2006-01-02"`
	Designation    *string `json:"designation"`
	Department     *string `json:"department"`
	Qualification  *string `json:"qualification"`
	Experience     *int    `json:"experience" binding:"omitempty,gte=0"`
	Specialization *string `json:"specialization"`
	DateOfBirth    *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=male female other"`
	IsActive       *bool   `json:"is_active"`
	IsClassTeacher *bool   `json:"is_class_teacher"`
	Remarks        *string `json:"remarks"`
}
