package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/db"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// TeacherService manages teacher enrollment and profiles.
type TeacherService struct {
	teachers repositories.ITeacherRepository
	users    repositories.IUserRepository
	txRunner db.TxRunner
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teachers repositories.ITeacherRepository, users repositories.IUserRepository, txRunner db.TxRunner) *TeacherService {
	return &TeacherService{teachers: teachers, users: users, txRunner: txRunner}
}

// Enroll creates a teacher profile, together with its identity when one is
// nested in the request. Identity and profile are written in one transaction:
// either both exist afterwards or neither does.
func (s *TeacherService) Enroll(ctx context.Context, req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	if req.User == nil && req.UserID == nil {
		return nil, apperrors.NewValidationError("user", "either user or user_id must be provided")
	}
	if req.User != nil && req.UserID != nil {
		return nil, apperrors.NewValidationError("user", "user and user_id are mutually exclusive")
	}

	if exists, err := s.teachers.EmployeeIDExists(ctx, req.EmployeeID); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmployeeIDAlreadyExists
	}

	teacher, err := s.buildTeacher(req)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		user, err := s.users.GetByID(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if user.Role != models.RoleTeacher {
			return nil, apperrors.NewValidationError("user_id", "identity must have the teacher role")
		}
		teacher.UserID = user.ID
		teacher.User = user
		if err := s.teachers.Create(ctx, teacher); err != nil {
			return nil, err
		}
		return teacher, nil
	}

	if exists, err := s.users.EmailExists(ctx, req.User.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	user, err := buildNestedUser(req.User, models.RoleTeacher)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		teacher.UserID = user.ID
		return s.teachers.CreateTx(ctx, tx, teacher)
	})
	if err != nil {
		return nil, err
	}
	teacher.User = user
	return teacher, nil
}

func (s *TeacherService) buildTeacher(req *dto.CreateTeacherRequest) (*models.Teacher, error) {
	dateOfJoining, err := helpers.ParseDate(req.DateOfJoining)
	if err != nil {
		return nil, apperrors.NewValidationError("date_of_joining", "invalid date")
	}
	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("date_of_birth", "invalid date")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &models.Teacher{
		EmployeeID:     req.EmployeeID,
		DateOfJoining:  dateOfJoining,
		Designation:    req.Designation,
		Department:     req.Department,
		Qualification:  req.Qualification,
		Experience:     req.Experience,
		Specialization: req.Specialization,
		DateOfBirth:    dateOfBirth,
		Gender:         req.Gender,
		IsActive:       isActive,
		IsClassTeacher: req.IsClassTeacher,
		Remarks:        req.Remarks,
	}, nil
}

// Get retrieves a teacher by ID with its identity populated.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	return s.teachers.GetByID(ctx, id)
}

// List retrieves a page of teachers together with the total count.
func (s *TeacherService) List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Teacher, int64, error) {
	teachers, err := s.teachers.List(ctx, activeOnly, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.teachers.Count(ctx, activeOnly)
	if err != nil {
		return nil, 0, err
	}
	return teachers, count, nil
}

// Update applies a partial update to a teacher, optionally together with its
// identity. Profile and identity changes commit atomically.
func (s *TeacherService) Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EmployeeID != nil {
		teacher.EmployeeID = *req.EmployeeID
	}
	if req.DateOfJoining != nil {
		t, err := helpers.ParseDate(*req.DateOfJoining)
		if err != nil {
			return nil, apperrors.NewValidationError("date_of_joining", "invalid date")
		}
		teacher.DateOfJoining = t
	}
	if req.Designation != nil {
		teacher.Designation = *req.Designation
	}
	if req.Department != nil {
		teacher.Department = *req.Department
	}
	if req.Qualification != nil {
		teacher.Qualification = req.Qualification
	}
	if req.Experience != nil {
		teacher.Experience = *req.Experience
	}
	if req.Specialization != nil {
		teacher.Specialization = req.Specialization
	}
	if req.DateOfBirth != nil {
		t, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("date_of_birth", "invalid date")
		}
		teacher.DateOfBirth = t
	}
	if req.Gender != nil {
		teacher.Gender = *req.Gender
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}
	if req.IsClassTeacher != nil {
		teacher.IsClassTeacher = *req.IsClassTeacher
	}
	if req.Remarks != nil {
		teacher.Remarks = req.Remarks
	}

	if req.User == nil {
		if err := s.teachers.Update(ctx, teacher); err != nil {
			return nil, err
		}
		return teacher, nil
	}

	applyNestedUserPatch(teacher.User, req.User)
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.UpdateTx(ctx, tx, teacher.User); err != nil {
			return err
		}
		return s.teachers.UpdateTx(ctx, tx, teacher)
	})
	if err != nil {
		return nil, err
	}
	return teacher, nil
}

// Delete removes a teacher profile. The identity behind it stays.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	return s.teachers.Delete(ctx, id)
}
