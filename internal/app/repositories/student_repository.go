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

var studentColumns = []string{
	"id", "user_id", "admission_number", "roll_number", "date_of_admission",
	"date_of_birth", "gender", "blood_group", "parent_name", "parent_phone",
	"parent_email", "is_active", "current_class_id", "current_section",
	"previous_school", "remarks", "created_at", "updated_at",
}

// IStudentRepository defines the student profile operations consumed by the
// services.
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error)
	List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Student, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRepository handles student profile rows in the 'students' table.
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student profile and sets its generated ID.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.create(ctx, r.db, student)
}

// CreateTx inserts a new student profile within an existing transaction.
// Used by enrollment so a failed profile insert rolls the identity back too.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	return r.create(ctx, tx, student)
}

func (r *StudentRepository) create(ctx context.Context, q Querier, student *models.Student) error {
	sql, args, err := psql.Insert("students").
		Columns("user_id", "admission_number", "roll_number", "date_of_admission",
			"date_of_birth", "gender", "blood_group", "parent_name", "parent_phone",
			"parent_email", "is_active", "current_class_id", "current_section",
			"previous_school", "remarks").
		Values(student.UserID, student.AdmissionNumber, student.RollNumber,
			student.DateOfAdmission, student.DateOfBirth, student.Gender,
			student.BloodGroup, student.ParentName, student.ParentPhone,
			student.ParentEmail, student.IsActive, student.CurrentClassID,
			student.CurrentSection, student.PreviousSchool, student.Remarks).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "students_admission_number_key") {
			return apperrors.ErrAdmissionNumberAlreadyExists
		}
		if dberrors.IsUniqueViolation(err, "students_user_id_key") {
			return apperrors.NewConflictError("user already has a student profile")
		}
		logger.Error().Err(err).Str("admissionNumber", student.AdmissionNumber).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student with its identity populated.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id})
}

// GetByUserID retrieves the student profile owned by an identity.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.user_id": userID})
}

func (r *StudentRepository) getOne(ctx context.Context, pred interface{}) (*models.Student, error) {
	sql, args, err := psql.Select(joinColumns("s", studentColumns, "u", userColumns)...).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student models.Student
	var user models.User
	err = scanStudentWithUser(r.db.QueryRow(ctx, sql, args...), &student, &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	student.User = &user
	return &student, nil
}

// AdmissionNumberExists checks whether an admission number is already taken.
func (r *StudentRepository) AdmissionNumberExists(ctx context.Context, admissionNumber string) (bool, error) {
	var exists bool
	sql, args, err := psql.Select("1").
		From("students").
		Where(squirrel.Eq{"admission_number": admissionNumber}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admission number exists query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("admissionNumber", admissionNumber).Msg("Error checking admission number existence")
		return false, fmt.Errorf("error checking admission number existence: %w", err)
	}
	return exists, nil
}

// List retrieves students ordered by admission number, optionally limited
// to active profiles.
func (r *StudentRepository) List(ctx context.Context, activeOnly bool, offset, limit uint64) ([]*models.Student, error) {
	builder := psql.Select(joinColumns("s", studentColumns, "u", userColumns)...).
		From("students s").
		Join("users u ON u.id = s.user_id").
		OrderBy("s.admission_number").
		Offset(offset).
		Limit(limit)
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"s.is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing students")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var user models.User
		if err := scanStudentWithUser(rows, &student, &user); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		student.User = &user
		students = append(students, &student)
	}
	return students, rows.Err()
}

// Count returns the number of students, optionally active only.
func (r *StudentRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	builder := psql.Select("COUNT(*)").From("students")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the student profile.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	return r.update(ctx, r.db, student)
}

// UpdateTx persists the student profile within an existing transaction.
func (r *StudentRepository) UpdateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	return r.update(ctx, tx, student)
}

func (r *StudentRepository) update(ctx context.Context, q Querier, student *models.Student) error {
	sql, args, err := psql.Update("students").
		Set("admission_number", student.AdmissionNumber).
		Set("roll_number", student.RollNumber).
		Set("date_of_admission", student.DateOfAdmission).
		Set("date_of_birth", student.DateOfBirth).
		Set("gender", student.Gender).
		Set("blood_group", student.BloodGroup).
		Set("parent_name", student.ParentName).
		Set("parent_phone", student.ParentPhone).
		Set("parent_email", student.ParentEmail).
		Set("is_active", student.IsActive).
		Set("current_class_id", student.CurrentClassID).
		Set("current_section", student.CurrentSection).
		Set("previous_school", student.PreviousSchool).
		Set("remarks", student.Remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "students_admission_number_key") {
			return apperrors.ErrAdmissionNumberAlreadyExists
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student profile. The identity stays.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error deleting student")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func scanStudentWithUser(row pgx.Row, student *models.Student, user *models.User) error {
	return row.Scan(
		&student.ID, &student.UserID, &student.AdmissionNumber, &student.RollNumber,
		&student.DateOfAdmission, &student.DateOfBirth, &student.Gender,
		&student.BloodGroup, &student.ParentName, &student.ParentPhone,
		&student.ParentEmail, &student.IsActive, &student.CurrentClassID,
		&student.CurrentSection, &student.PreviousSchool, &student.Remarks,
		&student.CreatedAt, &student.UpdatedAt,
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.PhoneNumber, &user.Address, &user.Role, &user.IsStaff,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
}
