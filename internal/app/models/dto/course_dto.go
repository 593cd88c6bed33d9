package dto

// CreateAcademicYearRequest creates an academic year (staff only).
type CreateAcademicYearRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	IsActive  bool   `json:"is_active"`
}

// UpdateAcademicYearRequest patches an academic year.
type UpdateAcademicYearRequest struct {
	Name      *string `json:"name"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	IsActive  *bool   `json:"is_active"`
}

// CreateClassRequest creates a class (staff only).
type CreateClassRequest struct {
	Name           string `json:"name" binding:"required"`
	AcademicYearID int64  `json:"academic_year" binding:"required"`
	Sections       string `json:"sections"`
	ClassTeacherID *int64 `json:"class_teacher_id"`
}

// UpdateClassRequest patches a class.
type UpdateClassRequest struct {
	Name           *string `json:"name"`
	AcademicYearID *int64  `json:"academic_year"`
	Sections       *string `json:"sections"`
	ClassTeacherID *int64  `json:"class_teacher_id"`
}

// CreateSubjectRequest creates a subject (staff only).
type CreateSubjectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description *string `json:"description"`
}

// UpdateSubjectRequest patches a subject.
type UpdateSubjectRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

// CreateClassSubjectRequest assigns a subject to a class (staff only).
type CreateClassSubjectRequest struct {
	ClassID    int64  `json:"class_obj" binding:"required"`
	SubjectID  int64  `json:"subject" binding:"required"`
	TeacherID  *int64 `json:"teacher_id"`
	IsOptional bool   `json:"is_optional"`
	Credits    *int   `json:"credits" binding:"omitempty,gte=1"`
}

// UpdateClassSubjectRequest patches a class-subject assignment.
type UpdateClassSubjectRequest struct {
	ClassID    *int64 `json:"class_obj"`
	SubjectID  *int64 `json:"subject"`
	TeacherID  *int64 `json:"teacher_id"`
	IsOptional *bool  `json:"is_optional"`
	Credits    *int   `json:"credits" binding:"omitempty,gte=1"`
}
