package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medhashaala/erp/internal/app/models"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/dberrors"
	"github.com/medhashaala/erp/internal/pkg/logger"
)

var teacherColumns = []string{
	"id", "user_id", "employee_id", "date_of_joining", "designation",
	"department", "qualification", "experience", "specialization",
	"date_of_birth", "gender", "is_active", "is_class_teacher", "remarks",
	"created_at", "updated_at",
}

// ITeacherRepository defines the teacher profile operations consumed by the
// services.
type ITeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	CreateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	EmployeeIDExists(ctx context.Context, employeeID string) (bool, error)
	List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Teacher, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	UpdateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRepository handles teacher profile rows in the 'teachers' table.
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Create inserts a new teacher profile and sets its generated ID.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	return r.create(ctx, r.db, teacher)
}

// CreateTx inserts a new teacher profile within an existing transaction.
func (r *TeacherRepository) CreateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error {
	return r.create(ctx, tx, teacher)
}

func (r *TeacherRepository) create(ctx context.Context, q Querier, teacher *models.Teacher) error {
	sql, args, err := psql.Insert("teachers").
		Columns("user_id", "employee_id", "date_of_joining", "designation",
			"department", "qualification", "experience", "specialization",
			"date_of_birth", "gender", "is_active", "is_class_teacher", "remarks").
		Values(teacher.UserID, teacher.EmployeeID, teacher.DateOfJoining,
			teacher.Designation, teacher.Department, teacher.Qualification,
			teacher.Experience, teacher.Specialization, teacher.DateOfBirth,
			teacher.Gender, teacher.IsActive, teacher.IsClassTeacher, teacher.Remarks).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "teachers_employee_id_key") {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		if dberrors.IsUniqueViolation(err, "teachers_user_id_key") {
			return apperrors.NewConflictError("user already has a teacher profile")
		}
		logger.Error().Err(err).Str("employeeID", teacher.EmployeeID).Msg("Error creating teacher")
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// GetByID retrieves a teacher with its identity populated.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"t.id": id})
}

// GetByUserID retrieves the teacher profile owned by an identity.
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"t.user_id": userID})
}

func (r *TeacherRepository) getOne(ctx context.Context, pred interface{}) (*models.Teacher, error) {
	sql, args, err := psql.Select(joinColumns("t", teacherColumns, "u", userColumns)...).
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	var teacher models.Teacher
	var user models.User
	err = scanTeacherWithUser(r.db.QueryRow(ctx, sql, args...), &teacher, &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	teacher.User = &user
	return &teacher, nil
}

// EmployeeIDExists checks whether an employee ID is already taken.
func (r *TeacherRepository) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	sql, args, err := psql.Select("1").
		From("teachers").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build employee ID exists query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("employeeID", employeeID).Msg("Error checking employee ID existence")
		return false, fmt.Errorf("error checking employee ID existence: %w", err)
	}
	return exists, nil
}

// List retrieves teachers ordered by employee ID, optionally limited to
// active profiles.
func (r *TeacherRepository) List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Teacher, error) {
	builder := psql.Select(joinColumns("t", teacherColumns, "u", userColumns)...).
		From("teachers t").
		Join("users u ON u.id = t.user_id").
		OrderBy("t.employee_id").
		Offset(offset).
		Limit(limit)
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"t.is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing teachers")
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var teacher models.Teacher
		var user models.User
		if err := scanTeacherWithUser(rows, &teacher, &user); err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teacher.User = &user
		teachers = append(teachers, &teacher)
	}
	return teachers, rows.Err()
}

// Count returns the number of teachers, optionally active only.
func (r *TeacherRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	builder := psql.Select("COUNT(*)").From("teachers")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count teachers query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting teachers: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the teacher profile.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	return r.update(ctx, r.db, teacher)
}

// UpdateTx persists the teacher profile within an existing transaction.
func (r *TeacherRepository) UpdateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error {
	return r.update(ctx, tx, teacher)
}

func (r *TeacherRepository) update(ctx context.Context, q Querier, teacher *models.Teacher) error {
	sql, args, err := psql.Update("teachers").
		Set("employee_id", teacher.EmployeeID).
		Set("date_of_joining", teacher.DateOfJoining).
		Set("designation", teacher.Designation).
		Set("department", teacher.Department).
		Set("qualification", teacher.Qualification).
		Set("experience", teacher.Experience).
		Set("specialization", teacher.Specialization).
		Set("date_of_birth", teacher.DateOfBirth).
		Set("gender", teacher.Gender).
		Set("is_active", teacher.IsActive).
		Set("is_class_teacher", teacher.IsClassTeacher).
		Set("remarks", teacher.Remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "teachers_employee_id_key") {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		logger.Error().Err(err).Int64("teacherID", teacher.ID).Msg("Error updating teacher")
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// Delete removes a teacher profile. The identity stays.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM teachers WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error deleting teacher")
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

func scanTeacherWithUser(row pgx.Row, teacher *models.Teacher, user *models.User) error {
	return row.Scan(
		&teacher.ID, &teacher.UserID, &teacher.EmployeeID, &teacher.DateOfJoining,
		&teacher.Designation, &teacher.Department, &teacher.Qualification,
		&teacher.Experience, &teacher.Specialization, &teacher.DateOfBirth,
		&teacher.Gender, &teacher.IsActive, &teacher.IsClassTeacher,
		&teacher.Remarks, &teacher.CreatedAt, &teacher.UpdatedAt,
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.PhoneNumber, &user.Address, &user.Role, &user.IsStaff,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
}
