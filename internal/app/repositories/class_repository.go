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

var classColumns = []string{
	"id", "name", "academic_year_id", "sections", "class_teacher_id",
	"created_at", "updated_at",
}

// IClassRepository defines class storage operations.
type IClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.Class, error)
	ListAll(ctx context.Context) ([]*models.Class, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassRepository handles rows in the 'classes' table.
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	sql, args, err := psql.Insert("classes").
		Columns("name", "academic_year_id", "sections", "class_teacher_id").
		Values(class.Name, class.AcademicYearID, class.Sections, class.ClassTeacherID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create class query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "classes_name_academic_year_id_key") {
			return apperrors.ErrClassAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced academic year or teacher does not exist")
		}
		logger.Error().Err(err).Str("name", class.Name).Msg("Error creating class")
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

// GetByID retrieves a class by ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	sql, args, err := psql.Select(classColumns...).
		From("classes").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class query: %w", err)
	}

	var class models.Class
	err = scanClass(r.db.QueryRow(ctx, sql, args...), &class)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return &class, nil
}

// List retrieves a page of classes ordered by name.
func (r *ClassRepository) List(ctx context.Context, offset, limit uint64) ([]*models.Class, error) {
	return r.list(ctx, psql.Select(classColumns...).
		From("classes").
		OrderBy("name").
		Offset(offset).
		Limit(limit))
}

// ListAll retrieves every class. Used to derive the section list.
func (r *ClassRepository) ListAll(ctx context.Context) ([]*models.Class, error) {
	return r.list(ctx, psql.Select(classColumns...).From("classes").OrderBy("name"))
}

func (r *ClassRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Class, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list classes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing classes")
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := scanClass(rows, &class); err != nil {
			return nil, fmt.Errorf("error scanning class row: %w", err)
		}
		classes = append(classes, &class)
	}
	return classes, rows.Err()
}

// Count returns the total number of classes.
func (r *ClassRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM classes").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting classes: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the class.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	sql, args, err := psql.Update("classes").
		Set("name", class.Name).
		Set("academic_year_id", class.AcademicYearID).
		Set("sections", class.Sections).
		Set("class_teacher_id", class.ClassTeacherID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": class.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "classes_name_academic_year_id_key") {
			return apperrors.ErrClassAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced academic year or teacher does not exist")
		}
		logger.Error().Err(err).Int64("classID", class.ID).Msg("Error updating class")
		return fmt.Errorf("error updating class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// Delete removes a class; its subject assignments cascade.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM classes WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error deleting class")
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

func scanClass(row pgx.Row, class *models.Class) error {
	return row.Scan(
		&class.ID, &class.Name, &class.AcademicYearID, &class.Sections,
		&class.ClassTeacherID, &class.CreatedAt, &class.UpdatedAt,
	)
}
