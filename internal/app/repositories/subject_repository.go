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

var subjectColumns = []string{
	"id", "name", "code", "description", "created_at", "updated_at",
}

// ISubjectRepository defines subject storage operations.
type ISubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.Subject, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
}

// SubjectRepository handles rows in the 'subjects' table.
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new SubjectRepository.
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	sql, args, err := psql.Insert("subjects").
		Columns("name", "code", "description").
		Values(subject.Name, subject.Code, subject.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "subjects_code_key") {
			return apperrors.ErrSubjectCodeAlreadyExists
		}
		logger.Error().Err(err).Str("code", subject.Code).Msg("Error creating subject")
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetByID retrieves a subject by ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := psql.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	var subject models.Subject
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&subject.ID, &subject.Name, &subject.Code, &subject.Description,
		&subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return &subject, nil
}

// List retrieves subjects ordered by name.
func (r *SubjectRepository) List(ctx context.Context, offset, limit uint64) ([]*models.Subject, error) {
	sql, args, err := psql.Select(subjectColumns...).
		From("subjects").
		OrderBy("name").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing subjects")
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Code,
			&subject.Description, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, &subject)
	}
	return subjects, rows.Err()
}

// Count returns the total number of subjects.
func (r *SubjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM subjects").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting subjects: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the subject.
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := psql.Update("subjects").
		Set("name", subject.Name).
		Set("code", subject.Code).
		Set("description", subject.Description).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": subject.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "subjects_code_key") {
			return apperrors.ErrSubjectCodeAlreadyExists
		}
		logger.Error().Err(err).Int64("subjectID", subject.ID).Msg("Error updating subject")
		return fmt.Errorf("error updating subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject; its class assignments cascade.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM subjects WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error deleting subject")
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}
