package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/db"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/auth"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// StudentService manages student enrollment and profiles.
type StudentService struct {
	students repositories.IStudentRepository
	users    repositories.IUserRepository
	txRunner db.TxRunner
}

// NewStudentService creates a new StudentService.
func NewStudentService(students repositories.IStudentRepository, users repositories.IUserRepository, txRunner db.TxRunner) *StudentService {
	return &StudentService{students: students, users: users, txRunner: txRunner}
}

// Enroll creates a student profile, together with its identity when one is
// nested in the request. Identity and profile are written in one transaction:
// either both exist afterwards or neither does.
func (s *StudentService) Enroll(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if req.User == nil && req.UserID == nil {
		return nil, apperrors.NewValidationError("user", "either user or user_id must be provided")
	}
	if req.User != nil && req.UserID != nil {
		return nil, apperrors.NewValidationError("user", "user and user_id are mutually exclusive")
	}

	if exists, err := s.students.AdmissionNumberExists(ctx, req.AdmissionNumber); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrAdmissionNumberAlreadyExists
	}

	student, err := s.buildStudent(req)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		user, err := s.users.GetByID(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if user.Role != models.RoleStudent {
			return nil, apperrors.NewValidationError("user_id", "identity must have the student role")
		}
		student.UserID = user.ID
		student.User = user
		if err := s.students.Create(ctx, student); err != nil {
			return nil, err
		}
		return student, nil
	}

	if exists, err := s.users.EmailExists(ctx, req.User.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	user, err := buildNestedUser(req.User, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		student.UserID = user.ID
		return s.students.CreateTx(ctx, tx, student)
	})
	if err != nil {
		return nil, err
	}
	student.User = user
	return student, nil
}

func (s *StudentService) buildStudent(req *dto.CreateStudentRequest) (*models.Student, error) {
	dateOfAdmission, err := helpers.ParseDate(req.DateOfAdmission)
	if err != nil {
		return nil, apperrors.NewValidationError("date_of_admission", "invalid date")
	}
	dateOfBirth, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("date_of_birth", "invalid date")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &models.Student{
		AdmissionNumber: req.AdmissionNumber,
		RollNumber:      req.RollNumber,
		DateOfAdmission: dateOfAdmission,
		DateOfBirth:     dateOfBirth,
		Gender:          req.Gender,
		BloodGroup:      req.BloodGroup,
		ParentName:      req.ParentName,
		ParentPhone:     req.ParentPhone,
		ParentEmail:     req.ParentEmail,
		IsActive:        isActive,
		CurrentClassID:  req.CurrentClassID,
		CurrentSection:  req.CurrentSection,
		PreviousSchool:  req.PreviousSchool,
		Remarks:         req.Remarks,
	}, nil
}

// Get retrieves a student by ID with its identity populated.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// List retrieves a page of students together with the total count.
func (s *StudentService) List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Student, int64, error) {
	students, err := s.students.List(ctx, activeOnly, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.students.Count(ctx, activeOnly)
	if err != nil {
		return nil, 0, err
	}
	return students, count, nil
}

// Update applies a partial update to a student, optionally together with its
// identity. Profile and identity changes commit atomically.
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AdmissionNumber != nil {
		student.AdmissionNumber = *req.AdmissionNumber
	}
	if req.RollNumber != nil {
		student.RollNumber = req.RollNumber
	}
	if req.DateOfAdmission != nil {
		t, err := helpers.ParseDate(*req.DateOfAdmission)
		if err != nil {
			return nil, apperrors.NewValidationError("date_of_admission", "invalid date")
		}
		student.DateOfAdmission = t
	}
	if req.DateOfBirth != nil {
		t, err := helpers.ParseDate(*req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("date_of_birth", "invalid date")
		}
		student.DateOfBirth = t
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		student.BloodGroup = req.BloodGroup
	}
	if req.ParentName != nil {
		student.ParentName = req.ParentName
	}
	if req.ParentPhone != nil {
		student.ParentPhone = req.ParentPhone
	}
	if req.ParentEmail != nil {
		student.ParentEmail = req.ParentEmail
	}
	if req.IsActive != nil {
		student.IsActive = *req.IsActive
	}
	if req.CurrentClassID != nil {
		student.CurrentClassID = req.CurrentClassID
	}
	if req.CurrentSection != nil {
		student.CurrentSection = req.CurrentSection
	}
	if req.PreviousSchool != nil {
		student.PreviousSchool = req.PreviousSchool
	}
	if req.Remarks != nil {
		student.Remarks = req.Remarks
	}

	if req.User == nil {
		if err := s.students.Update(ctx, student); err != nil {
			return nil, err
		}
		return student, nil
	}

	applyNestedUserPatch(student.User, req.User)
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.UpdateTx(ctx, tx, student.User); err != nil {
			return err
		}
		return s.students.UpdateTx(ctx, tx, student)
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student profile. The identity behind it stays.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	return s.students.Delete(ctx, id)
}

// buildNestedUser materialises the identity half of an enrollment request.
// An empty password is replaced with a random credential so the account
// cannot authenticate until an administrator resets it.
func buildNestedUser(payload *dto.NestedUserPayload, role models.Role) (*models.User, error) {
	password := payload.Password
	if password == "" {
		password = uuid.New().String()
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Email:       payload.Email,
		Password:    hashed,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		PhoneNumber: payload.PhoneNumber,
		Address:     payload.Address,
		Role:        role,
		IsActive:    true,
	}, nil
}

func applyNestedUserPatch(user *models.User, patch *dto.NestedUserPatch) {
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
}
