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

var academicYearColumns = []string{
	"id", "name", "start_date", "end_date", "is_active", "created_at", "updated_at",
}

// IAcademicYearRepository defines academic year storage operations.
type IAcademicYearRepository interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	GetByID(ctx context.Context, id int64) (*models.AcademicYear, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.AcademicYear, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, year *models.AcademicYear) error
	Delete(ctx context.Context, id int64) error
}

// AcademicYearRepository handles rows in the 'academic_years' table.
type AcademicYearRepository struct {
	db *pgxpool.Pool
}

// NewAcademicYearRepository creates a new AcademicYearRepository.
func NewAcademicYearRepository(db *pgxpool.Pool) *AcademicYearRepository {
	return &AcademicYearRepository{db: db}
}

// Create inserts a new academic year.
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) error {
	sql, args, err := psql.Insert("academic_years").
		Columns("name", "start_date", "end_date", "is_active").
		Values(year.Name, year.StartDate, year.EndDate, year.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create academic year query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&year.ID, &year.CreatedAt, &year.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "academic_years_name_key") {
			return apperrors.ErrAcademicYearAlreadyExists
		}
		logger.Error().Err(err).Str("name", year.Name).Msg("Error creating academic year")
		return fmt.Errorf("error creating academic year: %w", err)
	}
	return nil
}

// GetByID retrieves an academic year by ID.
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	sql, args, err := psql.Select(academicYearColumns...).
		From("academic_years").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get academic year query: %w", err)
	}

	var year models.AcademicYear
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&year.ID, &year.Name, &year.StartDate, &year.EndDate, &year.IsActive,
		&year.CreatedAt, &year.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAcademicYearNotFound
		}
		return nil, fmt.Errorf("error retrieving academic year: %w", err)
	}
	return &year, nil
}

// List retrieves academic years ordered by start date, newest first.
func (r *AcademicYearRepository) List(ctx context.Context, offset, limit uint64) ([]*models.AcademicYear, error) {
	sql, args, err := psql.Select(academicYearColumns...).
		From("academic_years").
		OrderBy("start_date DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list academic years query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing academic years")
		return nil, fmt.Errorf("error listing academic years: %w", err)
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		var year models.AcademicYear
		if err := rows.Scan(&year.ID, &year.Name, &year.StartDate, &year.EndDate,
			&year.IsActive, &year.CreatedAt, &year.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning academic year row: %w", err)
		}
		years = append(years, &year)
	}
	return years, rows.Err()
}

// Count returns the total number of academic years.
func (r *AcademicYearRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM academic_years").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting academic years: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the academic year.
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	sql, args, err := psql.Update("academic_years").
		Set("name", year.Name).
		Set("start_date", year.StartDate).
		Set("end_date", year.EndDate).
		Set("is_active", year.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": year.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update academic year query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "academic_years_name_key") {
			return apperrors.ErrAcademicYearAlreadyExists
		}
		logger.Error().Err(err).Int64("academicYearID", year.ID).Msg("Error updating academic year")
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// Delete removes an academic year; its classes cascade.
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM academic_years WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("academicYearID", id).Msg("Error deleting academic year")
		return fmt.Errorf("error deleting academic year: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}
