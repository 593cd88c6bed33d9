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

var examColumns = []string{
	"id", "name", "exam_type_id", "class_id", "subject_id", "date",
	"total_marks", "passing_marks", "created_at", "updated_at",
}

// IExamRepository defines exam storage operations.
type IExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.Exam, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, exam *models.Exam) error
	Delete(ctx context.Context, id int64) error
}

// ExamRepository handles rows in the 'exams' table.
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db}
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	sql, args, err := psql.Insert("exams").
		Columns("name", "exam_type_id", "class_id", "subject_id", "date",
			"total_marks", "passing_marks").
		Values(exam.Name, exam.ExamTypeID, exam.ClassID, exam.SubjectID,
			exam.Date, exam.TotalMarks, exam.PassingMarks).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID, &exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced exam type, class or subject does not exist")
		}
		logger.Error().Err(err).Str("name", exam.Name).Msg("Error creating exam")
		return fmt.Errorf("error creating exam: %w", err)
	}
	return nil
}

// GetByID retrieves an exam by ID.
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := psql.Select(examColumns...).
		From("exams").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	var exam models.Exam
	err = scanExam(r.db.QueryRow(ctx, sql, args...), &exam)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}
	return &exam, nil
}

// List retrieves exams ordered by date, newest first.
func (r *ExamRepository) List(ctx context.Context, offset, limit uint64) ([]*models.Exam, error) {
	sql, args, err := psql.Select(examColumns...).
		From("exams").
		OrderBy("date DESC", "id").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing exams")
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		var exam models.Exam
		if err := scanExam(rows, &exam); err != nil {
			return nil, fmt.Errorf("error scanning exam row: %w", err)
		}
		exams = append(exams, &exam)
	}
	return exams, rows.Err()
}

// Count returns the total number of exams.
func (r *ExamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM exams").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting exams: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the exam.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	sql, args, err := psql.Update("exams").
		Set("name", exam.Name).
		Set("exam_type_id", exam.ExamTypeID).
		Set("class_id", exam.ClassID).
		Set("subject_id", exam.SubjectID).
		Set("date", exam.Date).
		Set("total_marks", exam.TotalMarks).
		Set("passing_marks", exam.PassingMarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": exam.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced exam type, class or subject does not exist")
		}
		logger.Error().Err(err).Int64("examID", exam.ID).Msg("Error updating exam")
		return fmt.Errorf("error updating exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// Delete removes an exam; its grades cascade.
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM exams WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error deleting exam")
		return fmt.Errorf("error deleting exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

func scanExam(row pgx.Row, exam *models.Exam) error {
	return row.Scan(
		&exam.ID, &exam.Name, &exam.ExamTypeID, &exam.ClassID, &exam.SubjectID,
		&exam.Date, &exam.TotalMarks, &exam.PassingMarks,
		&exam.CreatedAt, &exam.UpdatedAt,
	)
}
