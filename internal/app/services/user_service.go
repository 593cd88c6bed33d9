package services

import (
	"context"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

// UserService manages standalone identities.
type UserService struct {
	users repositories.IUserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.IUserRepository) *UserService {
	return &UserService{users: users}
}

// Create creates a standalone identity. The role defaults to student when
// omitted.
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.Role(req.UserType)
	if role == "" {
		role = models.RoleStudent
	}

	user := &models.User{
		Email:       req.Email,
		Password:    hashed,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        role,
		IsStaff:     req.IsStaff,
		IsActive:    true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// List retrieves a page of users together with the total count.
func (s *UserService) List(ctx context.Context, offset, limit uint64) ([]*models.User, int64, error) {
	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// Update applies a partial update to a user. Nil fields stay untouched.
func (s *UserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.UserType != nil {
		user.Role = models.Role(*req.UserType)
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Owned profiles go with it; attendance and grade
// records it marked keep a null recorder instead.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
