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

var classSubjectColumns = []string{
	"id", "class_id", "subject_id", "teacher_id", "is_optional", "credits",
	"created_at", "updated_at",
}

// IClassSubjectRepository defines class-subject assignment storage operations.
type IClassSubjectRepository interface {
	Create(ctx context.Context, cs *models.ClassSubject) error
	GetByID(ctx context.Context, id int64) (*models.ClassSubject, error)
	List(ctx context.Context, offset, limit uint64) ([]*models.ClassSubject, error)
	ListByClass(ctx context.Context, classID int64) ([]*models.ClassSubject, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, cs *models.ClassSubject) error
	Delete(ctx context.Context, id int64) error
}

// ClassSubjectRepository handles rows in the 'class_subjects' table.
type ClassSubjectRepository struct {
	db *pgxpool.Pool
}

// NewClassSubjectRepository creates a new ClassSubjectRepository.
func NewClassSubjectRepository(db *pgxpool.Pool) *ClassSubjectRepository {
	return &ClassSubjectRepository{db: db}
}

// Create inserts a new class-subject assignment.
func (r *ClassSubjectRepository) Create(ctx context.Context, cs *models.ClassSubject) error {
	sql, args, err := psql.Insert("class_subjects").
		Columns("class_id", "subject_id", "teacher_id", "is_optional", "credits").
		Values(cs.ClassID, cs.SubjectID, cs.TeacherID, cs.IsOptional, cs.Credits).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create class subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&cs.ID, &cs.CreatedAt, &cs.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "class_subjects_class_id_subject_id_key") {
			return apperrors.ErrClassSubjectAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced class, subject or teacher does not exist")
		}
		logger.Error().Err(err).Int64("classID", cs.ClassID).Int64("subjectID", cs.SubjectID).
			Msg("Error creating class subject")
		return fmt.Errorf("error creating class subject: %w", err)
	}
	return nil
}

// GetByID retrieves an assignment with its class and subject populated.
func (r *ClassSubjectRepository) GetByID(ctx context.Context, id int64) (*models.ClassSubject, error) {
	sql, args, err := r.joinedSelect().Where(squirrel.Eq{"cs.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get class subject query: %w", err)
	}

	var cs models.ClassSubject
	var class models.Class
	var subject models.Subject
	err = scanClassSubjectJoined(r.db.QueryRow(ctx, sql, args...), &cs, &class, &subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassSubjectNotFound
		}
		logger.Error().Err(err).Msg("Error scanning class subject row")
		return nil, fmt.Errorf("error retrieving class subject: %w", err)
	}
	cs.ClassDetail = &class
	cs.SubjectDetail = &subject
	return &cs, nil
}

// List retrieves a page of assignments with class and subject populated.
func (r *ClassSubjectRepository) List(ctx context.Context, offset, limit uint64) ([]*models.ClassSubject, error) {
	return r.listJoined(ctx, r.joinedSelect().OrderBy("cs.id").Offset(offset).Limit(limit))
}

// ListByClass retrieves all subject assignments of one class.
func (r *ClassSubjectRepository) ListByClass(ctx context.Context, classID int64) ([]*models.ClassSubject, error) {
	return r.listJoined(ctx, r.joinedSelect().Where(squirrel.Eq{"cs.class_id": classID}).OrderBy("sub.name"))
}

func (r *ClassSubjectRepository) joinedSelect() squirrel.SelectBuilder {
	cols := joinColumns("cs", classSubjectColumns, "c", classColumns)
	cols = append(cols, joinColumns("sub", subjectColumns, "", nil)...)
	return psql.Select(cols...).
		From("class_subjects cs").
		Join("classes c ON c.id = cs.class_id").
		Join("subjects sub ON sub.id = cs.subject_id")
}

func (r *ClassSubjectRepository) listJoined(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.ClassSubject, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list class subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing class subjects")
		return nil, fmt.Errorf("error listing class subjects: %w", err)
	}
	defer rows.Close()

	var assignments []*models.ClassSubject
	for rows.Next() {
		var cs models.ClassSubject
		var class models.Class
		var subject models.Subject
		if err := scanClassSubjectJoined(rows, &cs, &class, &subject); err != nil {
			return nil, fmt.Errorf("error scanning class subject row: %w", err)
		}
		cs.ClassDetail = &class
		cs.SubjectDetail = &subject
		assignments = append(assignments, &cs)
	}
	return assignments, rows.Err()
}

// Count returns the total number of assignments.
func (r *ClassSubjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM class_subjects").Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting class subjects: %w", err)
	}
	return count, nil
}

// Update persists all mutable fields of the assignment.
func (r *ClassSubjectRepository) Update(ctx context.Context, cs *models.ClassSubject) error {
	sql, args, err := psql.Update("class_subjects").
		Set("class_id", cs.ClassID).
		Set("subject_id", cs.SubjectID).
		Set("teacher_id", cs.TeacherID).
		Set("is_optional", cs.IsOptional).
		Set("credits", cs.Credits).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cs.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update class subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "class_subjects_class_id_subject_id_key") {
			return apperrors.ErrClassSubjectAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced class, subject or teacher does not exist")
		}
		logger.Error().Err(err).Int64("classSubjectID", cs.ID).Msg("Error updating class subject")
		return fmt.Errorf("error updating class subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassSubjectNotFound
	}
	return nil
}

// Delete removes an assignment; attendance rows referencing it keep a null
// class subject.
func (r *ClassSubjectRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM class_subjects WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("classSubjectID", id).Msg("Error deleting class subject")
		return fmt.Errorf("error deleting class subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassSubjectNotFound
	}
	return nil
}

func scanClassSubjectJoined(row pgx.Row, cs *models.ClassSubject, class *models.Class, subject *models.Subject) error {
	return row.Scan(
		&cs.ID, &cs.ClassID, &cs.SubjectID, &cs.TeacherID, &cs.IsOptional,
		&cs.Credits, &cs.CreatedAt, &cs.UpdatedAt,
		&class.ID, &class.Name, &class.AcademicYearID, &class.Sections,
		&class.ClassTeacherID, &class.CreatedAt, &class.UpdatedAt,
		&subject.ID, &subject.Name, &subject.Code, &subject.Description,
		&subject.CreatedAt, &subject.UpdatedAt,
	)
}
