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
	"github.com/medhashaala/erp/internal/pkg/logger"
)

var examTypeColumns = []string{
	"id", "name", "description", "created_at", "updated_at",
}

// IExamTypeRepository defines exam type storage operations.
type IExamTypeRepository interface {
	Create(ctx context.Context, examType *models.ExamType) error
	GetByID(ctx context.Context, id int64) (*models.ExamType, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.ExamType, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, examType *models.ExamType) error
	Delete(ctx context.Context, id int64) error
}

// ExamTypeRepository handles rows in the 'exam_types' table.
type ExamTypeRepository struct {
	db *pgxpool.Pool
}

// NewExamTypeRepository creates a new ExamTypeRepository.
func NewExamTypeRepository(db *pgxpool.Pool) *ExamTypeRepository {
	return &ExamTypeRepository{db: db}
}

// Create inserts a new exam type.
func (r *ExamTypeRepository) Create(ctx context.Context, examType *models.ExamType) error {
	sql, args, err := psql.Insert("exam_types").
		Columns("name", "description").
		Values(examType.Name, examType.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create exam type query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&examType.ID, &examType.CreatedAt, &examType.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("name", examType.Name).Msg("Error creating exam type")
		return fmt.Errorf("error creating exam type: %w", err)
	}
	return nil
}

// GetByID retrieves an exam type by ID.
func (r *ExamTypeRepository) GetByID(ctx context.Context, id int64) (*models.ExamType, error) {
	sql, args, err := psql.Select(examTypeColumns...).
		From("exam_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam type query: %w", err)
	}

	var examType models.ExamType
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&examType.ID, &examType.Name, &examType.Description,
		&examType.CreatedAt, &examType.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamTypeNotFound
		}
		return nil, fmt.Errorf("error retrieving exam type: %w", err)
	}
	return &examType, nil
}

// List retrieves exam types ordered by name.
func (r *ExamTypeRepository) List(ctx context.Context, offset, limit uint64) ([]*models.ExamType, error) {
	sql, args, err := psql.Select(examTypeColumns...).
		From("exam_types").
		OrderBy("name").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list exam types query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing exam types")
		return nil, fmt.Errorf("error listing exam types: %w", err)
	}
	defer rows.Close()

	var examTypes []*models.ExamType
	for rows.Next() {
		var examType models.ExamType
		if err := rows.Scan(&examType.ID, &examType.Name, &examType.Description,
			&examType.CreatedAt, &examType.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning exam type row: %w", err)
		}
		examTypes = append(examTypes, &examType)
	}
	return examTypes, rows.Err()
}

// Count returns the total number of exam types.
func (r *ExamTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM exam_types").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting exam types: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the exam type.
func (r *ExamTypeRepository) Update(ctx context.Context, examType *models.ExamType) error {
	sql, args, err := psql.Update("exam_types").
		Set("name", examType.Name).
		Set("description", examType.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": examType.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam type query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examTypeID", examType.ID).Msg("Error updating exam type")
		return fmt.Errorf("error updating exam type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamTypeNotFound
	}
	return nil
}

// Delete removes an exam type; its exams cascade.
func (r *ExamTypeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM exam_types WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("examTypeID", id).Msg("Error deleting exam type")
		return fmt.Errorf("error deleting exam type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamTypeNotFound
	}
	return nil
}
