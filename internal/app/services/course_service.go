package services

import (
	"context"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// CourseService manages the organisational entities: academic years, classes,
// subjects and the assignments between them.
type CourseService struct {
	academicYears repositories.IAcademicYearRepository
	classes       repositories.IClassRepository
	subjects      repositories.ISubjectRepository
	classSubjects repositories.IClassSubjectRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	academicYears repositories.IAcademicYearRepository,
	classes repositories.IClassRepository,
	subjects repositories.ISubjectRepository,
	classSubjects repositories.IClassSubjectRepository,
) *CourseService {
	return &CourseService{
		academicYears: academicYears,
		classes:       classes,
		subjects:      subjects,
		classSubjects: classSubjects,
	}
}

// CreateAcademicYear creates an academic year.
func (s *CourseService) CreateAcademicYear(ctx context.Context, req *dto.CreateAcademicYearRequest) (*models.AcademicYear, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("start_date", "invalid date")
	}
	endDate, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.NewValidationError("end_date", "invalid date")
	}
	if !endDate.After(startDate) {
		return nil, apperrors.NewValidationError("end_date", "end date must be after start date")
	}

	year := &models.AcademicYear{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  req.IsActive,
	}
	if err := s.academicYears.Create(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// GetAcademicYear retrieves an academic year by ID.
func (s *CourseService) GetAcademicYear(ctx context.Context, id int64) (*models.AcademicYear, error) {
	return s.academicYears.GetByID(ctx, id)
}

// ListAcademicYears retrieves a page of academic years with the total count.
func (s *CourseService) ListAcademicYears(ctx context.Context, offset, limit uint64) ([]*models.AcademicYear, int64, error) {
	years, err := s.academicYears.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.academicYears.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return years, count, nil
}

// UpdateAcademicYear applies a partial update to an academic year.
func (s *CourseService) UpdateAcademicYear(ctx context.Context, id int64, req *dto.UpdateAcademicYearRequest) (*models.AcademicYear, error) {
	year, err := s.academicYears.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		year.Name = *req.Name
	}
	if req.StartDate != nil {
		t, err := helpers.ParseDate(*req.StartDate)
		if err != nil {
			return nil, apperrors.NewValidationError("start_date", "invalid date")
		}
		year.StartDate = t
	}
	if req.EndDate != nil {
		t, err := helpers.ParseDate(*req.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationError("end_date", "invalid date")
		}
		year.EndDate = t
	}
	if req.IsActive != nil {
		year.IsActive = *req.IsActive
	}
	if !year.EndDate.After(year.StartDate) {
		return nil, apperrors.NewValidationError("end_date", "end date must be after start date")
	}

	if err := s.academicYears.Update(ctx, year); err != nil {
		return nil, err
	}
	return year, nil
}

// DeleteAcademicYear removes an academic year and its classes.
func (s *CourseService) DeleteAcademicYear(ctx context.Context, id int64) error {
	return s.academicYears.Delete(ctx, id)
}

// CreateClass creates a class within an academic year.
func (s *CourseService) CreateClass(ctx context.Context, req *dto.CreateClassRequest) (*models.Class, error) {
	class := &models.Class{
		Name:           req.Name,
		AcademicYearID: req.AcademicYearID,
		Sections:       req.Sections,
		ClassTeacherID: req.ClassTeacherID,
	}
	if err := s.classes.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// GetClass retrieves a class by ID.
func (s *CourseService) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	return s.classes.GetByID(ctx, id)
}

// ListClasses retrieves a page of classes with the total count.
func (s *CourseService) ListClasses(ctx context.Context, offset, limit uint64) ([]*models.Class, int64, error) {
	classes, err := s.classes.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.classes.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return classes, count, nil
}

// UpdateClass applies a partial update to a class.
func (s *CourseService) UpdateClass(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	class, err := s.classes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.AcademicYearID != nil {
		class.AcademicYearID = *req.AcademicYearID
	}
	if req.Sections != nil {
		class.Sections = *req.Sections
	}
	if req.ClassTeacherID != nil {
		class.ClassTeacherID = req.ClassTeacherID
	}

	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// DeleteClass removes a class and its subject assignments.
func (s *CourseService) DeleteClass(ctx context.Context, id int64) error {
	return s.classes.Delete(ctx, id)
}

// ClassSubjects retrieves all subject assignments of one class.
func (s *CourseService) ClassSubjects(ctx context.Context, classID int64) ([]*models.ClassSubject, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, err
	}
	return s.classSubjects.ListByClass(ctx, classID)
}

// Sections derives the section list from every class's section string.
// Sections are not stored as rows; their IDs are positions in the sorted,
// deduplicated list.
func (s *CourseService) Sections(ctx context.Context) ([]models.Section, error) {
	classes, err := s.classes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.CollectSections(classes), nil
}

// CreateSubject creates a subject.
func (s *CourseService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// GetSubject retrieves a subject by ID.
func (s *CourseService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

// ListSubjects retrieves a page of subjects with the total count.
func (s *CourseService) ListSubjects(ctx context.Context, offset, limit uint64) ([]*models.Subject, int64, error) {
	subjects, err := s.subjects.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.subjects.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return subjects, count, nil
}

// UpdateSubject applies a partial update to a subject.
func (s *CourseService) UpdateSubject(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = *req.Code
	}
	if req.Description != nil {
		subject.Description = req.Description
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject and its class assignments.
func (s *CourseService) DeleteSubject(ctx context.Context, id int64) error {
	return s.subjects.Delete(ctx, id)
}

// CreateClassSubject assigns a subject to a class. At most one assignment
// exists per (class, subject) pair.
func (s *CourseService) CreateClassSubject(ctx context.Context, req *dto.CreateClassSubjectRequest) (*models.ClassSubject, error) {
	credits := 1
	if req.Credits != nil {
		credits = *req.Credits
	}

	cs := &models.ClassSubject{
		ClassID:    req.ClassID,
		SubjectID:  req.SubjectID,
		TeacherID:  req.TeacherID,
		IsOptional: req.IsOptional,
		Credits:    credits,
	}
	if err := s.classSubjects.Create(ctx, cs); err != nil {
		return nil, err
	}
	return s.classSubjects.GetByID(ctx, cs.ID)
}

// GetClassSubject retrieves an assignment by ID with class and subject
// populated.
func (s *CourseService) GetClassSubject(ctx context.Context, id int64) (*models.ClassSubject, error) {
	return s.classSubjects.GetByID(ctx, id)
}

// ListClassSubjects retrieves a page of assignments with the total count.
func (s *CourseService) ListClassSubjects(ctx context.Context, offset, limit uint64) ([]*models.ClassSubject, int64, error) {
	assignments, err := s.classSubjects.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.classSubjects.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return assignments, count, nil
}

// UpdateClassSubject applies a partial update to an assignment.
func (s *CourseService) UpdateClassSubject(ctx context.Context, id int64, req *dto.UpdateClassSubjectRequest) (*models.ClassSubject, error) {
	cs, err := s.classSubjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClassID != nil {
		cs.ClassID = *req.ClassID
	}
	if req.SubjectID != nil {
		cs.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		cs.TeacherID = req.TeacherID
	}
	if req.IsOptional != nil {
		cs.IsOptional = *req.IsOptional
	}
	if req.Credits != nil {
		cs.Credits = *req.Credits
	}

	if err := s.classSubjects.Update(ctx, cs); err != nil {
		return nil, err
	}
	return s.classSubjects.GetByID(ctx, id)
}

// DeleteClassSubject removes an assignment.
func (s *CourseService) DeleteClassSubject(ctx context.Context, id int64) error {
	return s.classSubjects.Delete(ctx, id)
}
