package dto

// CreateStudentRequest enrolls a student. Either User (nested identity,
// created atomically with the profile) or UserID (existing identity) must
// be provided.
type CreateStudentRequest struct {
	User   *NestedUserPayload `json:"user"`
	UserID *int64             `json:"user_id"`

	AdmissionNumber string  `json:"admission_number" binding:"required"`
	RollNumber      *string `json:"roll_number"`
	DateOfAdmission string  `json:"date_of_admission" binding:"required,datetime=2006-01-02"`
	DateOfBirth     string  `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Gender          string  `json:"gender" binding:"required,oneof=male female other"`
	BloodGroup      *string `json:"blood_group"`
	ParentName      *string `json:"parent_name"`
	ParentPhone     *string `json:"parent_phone"`
	ParentEmail     *string `json:"parent_email" binding:"omitempty,email"`
	IsActive        *bool   `json:"is_active"`
	CurrentClassID  *int64  `json:"current_class"`
	CurrentSection  *string `json:"current_section"`
	PreviousSchool  *string `json:"previous_school"`
	Remarks         *string `json:"remarks"`
}

// UpdateStudentRequest patches a student profile, optionally together with
// its identity. Both patches apply atomically.
type UpdateStudentRequest struct {
	User *NestedUserPatch `json:"user"`

	AdmissionNumber *string `json:"admission_number"`
	RollNumber      *string `json:"roll_number"`
	DateOfAdmission *string `json:"date_of_admission" binding:"omitempty,datetime=2006-01-02"`
	DateOfBirth     *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender          *string `json:"gender" binding:"omitempty,oneof=male female other"`
	BloodGroup      *string `json:"blood_group"`
	ParentName      *string `json:"parent_name"`
	ParentPhone     *string `json:"parent_phone"`
	ParentEmail     *string `json:"parent_email" binding:"omitempty,email"`
	IsActive        *bool   `json:"is_active"`
	CurrentClassID  *int64  `json:"current_class"`
	CurrentSection  *string `json:"current_section"`
	PreviousSchool  *string `json:"previous_school"`
	Remarks         *string `json:"remarks"`
}
