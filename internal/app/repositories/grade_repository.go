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

var gradeColumns = []string{
	"id", "student_id", "exam_id", "marks_obtained", "remarks", "graded_by_id",
	"created_at", "updated_at",
}

// GradeQuery narrows grade listings at the storage level.
type GradeQuery struct {
	StudentID *int64
	ExamID    *int64
	ClassID   *int64
}

// IGradeRepository defines grade storage operations. Reads always populate
// the exam relation so percentage and pass status can be derived.
type IGradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	List(ctx context.Context, query GradeQuery, offset, limit uint64) ([]*models.Grade, error)
	Count(ctx context.Context, query GradeQuery) (int64, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

// GradeRepository handles rows in the 'grades' table.
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

// Create inserts a grade. At most one grade exists per (student, exam).
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	sql, args, err := psql.Insert("grades").
		Columns("student_id", "exam_id", "marks_obtained", "remarks", "graded_by_id").
		Values(grade.StudentID, grade.ExamID, grade.MarksObtained, grade.Remarks,
			grade.GradedByID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create grade query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "grades_student_id_exam_id_key") {
			return apperrors.ErrGradeAlreadyRecorded
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced student or exam does not exist")
		}
		logger.Error().Err(err).Int64("studentID", grade.StudentID).Int64("examID", grade.ExamID).
			Msg("Error creating grade")
		return fmt.Errorf("error creating grade: %w", err)
	}
	return nil
}

// GetByID retrieves a grade with its exam populated.
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	sql, args, err := r.joinedSelect().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get grade query: %w", err)
	}

	var grade models.Grade
	var exam models.Exam
	err = scanGradeWithExam(r.db.QueryRow(ctx, sql, args...), &grade, &exam)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		logger.Error().Err(err).Msg("Error scanning grade row")
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	grade.Exam = &exam
	return &grade, nil
}

// List retrieves grades matching the query with exams populated, newest exam
// date first.
func (r *GradeRepository) List(ctx context.Context, query GradeQuery, offset, limit uint64) ([]*models.Grade, error) {
	builder := r.applyQuery(r.joinedSelect(), query).
		OrderBy("e.date DESC", "g.id").
		Offset(offset).
		Limit(limit)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing grades")
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		var exam models.Exam
		if err := scanGradeWithExam(rows, &grade, &exam); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grade.Exam = &exam
		grades = append(grades, &grade)
	}
	return grades, rows.Err()
}

// Count returns the number of grades matching the query.
func (r *GradeRepository) Count(ctx context.Context, query GradeQuery) (int64, error) {
	builder := r.applyQuery(psql.Select("COUNT(*)").
		From("grades g").
		Join("exams e ON e.id = g.exam_id"), query)

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count grades query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting grades: %w", err)
	}
	return count, nil
}

func (r *GradeRepository) joinedSelect() squirrel.SelectBuilder {
	return psql.Select(joinColumns("g", gradeColumns, "e", examColumns)...).
		From("grades g").
		Join("exams e ON e.id = g.exam_id")
}

func (r *GradeRepository) applyQuery(builder squirrel.SelectBuilder, query GradeQuery) squirrel.SelectBuilder {
	if query.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"g.student_id": *query.StudentID})
	}
	if query.ExamID != nil {
		builder = builder.Where(squirrel.Eq{"g.exam_id": *query.ExamID})
	}
	if query.ClassID != nil {
		builder = builder.Where(squirrel.Eq{"e.class_id": *query.ClassID})
	}
	return builder
}

// Update persists all mutable fields of the grade.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	sql, args, err := psql.Update("grades").
		Set("student_id", grade.StudentID).
		Set("exam_id", grade.ExamID).
		Set("marks_obtained", grade.MarksObtained).
		Set("remarks", grade.Remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": grade.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update grade query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "grades_student_id_exam_id_key") {
			return apperrors.ErrGradeAlreadyRecorded
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced student or exam does not exist")
		}
		logger.Error().Err(err).Int64("gradeID", grade.ID).Msg("Error updating grade")
		return fmt.Errorf("error updating grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM grades WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("gradeID", id).Msg("Error deleting grade")
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

func scanGradeWithExam(row pgx.Row, grade *models.Grade, exam *models.Exam) error {
	return row.Scan(
		&grade.ID, &grade.StudentID, &grade.ExamID, &grade.MarksObtained,
		&grade.Remarks, &grade.GradedByID, &grade.CreatedAt, &grade.UpdatedAt,
		&exam.ID, &exam.Name, &exam.ExamTypeID, &exam.ClassID, &exam.SubjectID,
		&exam.Date, &exam.TotalMarks, &exam.PassingMarks,
		&exam.CreatedAt, &exam.UpdatedAt,
	)
}
