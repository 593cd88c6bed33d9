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

var attendanceColumns = []string{
	"id", "student_id", "class_subject_id", "date", "status", "remarks",
	"marked_by_id", "created_at", "updated_at",
}

// AttendanceQuery narrows attendance listings at the storage level.
type AttendanceQuery struct {
	StudentID      *int64
	ClassSubjectID *int64
	ClassID        *int64
	Date           *string
	Status         *string
}

// IAttendanceRepository defines attendance record storage operations.
type IAttendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	GetByID(ctx context.Context, id int64) (*models.Attendance, error)
	List(ctx context.Context, query AttendanceQuery, offset, limit uint64) ([]*models.Attendance, error)
	Count(ctx context.Context, query AttendanceQuery) (int64, error)
	Update(ctx context.Context, record *models.Attendance) error
	Delete(ctx context.Context, id int64) error
}

// AttendanceRepository handles rows in the 'attendance' table.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts an attendance record. At most one record exists per
// (student, class subject, date).
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	sql, args, err := psql.Insert("attendance").
		Columns("student_id", "class_subject_id", "date", "status", "remarks", "marked_by_id").
		Values(record.StudentID, record.ClassSubjectID, record.Date, record.Status,
			record.Remarks, record.MarkedByID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "attendance_student_id_class_subject_id_date_key") {
			return apperrors.ErrAttendanceAlreadyMarked
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced student or class subject does not exist")
		}
		logger.Error().Err(err).Int64("studentID", record.StudentID).Msg("Error creating attendance record")
		return fmt.Errorf("error creating attendance record: %w", err)
	}
	return nil
}

// GetByID retrieves an attendance record by ID.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	sql, args, err := psql.Select(joinColumns("a", attendanceColumns, "", nil)...).
		From("attendance a").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	var record models.Attendance
	err = scanAttendance(r.db.QueryRow(ctx, sql, args...), &record)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}
	return &record, nil
}

// List retrieves attendance records matching the query, newest date first.
func (r *AttendanceRepository) List(ctx context.Context, query AttendanceQuery, offset, limit uint64) ([]*models.Attendance, error) {
	builder := r.applyQuery(psql.Select(joinColumns("a", attendanceColumns, "", nil)...).
		From("attendance a"), query).
		OrderBy("a.date DESC", "a.id").
		Offset(offset).
		Limit(limit)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing attendance records")
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var record models.Attendance
		if err := scanAttendance(rows, &record); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Count returns the number of attendance records matching the query.
func (r *AttendanceRepository) Count(ctx context.Context, query AttendanceQuery) (int64, error) {
	sql, args, err := r.applyQuery(psql.Select("COUNT(*)").From("attendance a"), query).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count attendance query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting attendance records: %w", err)
	}
	return count, nil
}

func (r *AttendanceRepository) applyQuery(builder squirrel.SelectBuilder, query AttendanceQuery) squirrel.SelectBuilder {
	if query.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"a.student_id": *query.StudentID})
	}
	if query.ClassSubjectID != nil {
		builder = builder.Where(squirrel.Eq{"a.class_subject_id": *query.ClassSubjectID})
	}
	if query.ClassID != nil {
		builder = builder.Join("class_subjects cs ON cs.id = a.class_subject_id").
			Where(squirrel.Eq{"cs.class_id": *query.ClassID})
	}
	if query.Date != nil {
		builder = builder.Where(squirrel.Eq{"a.date": *query.Date})
	}
	if query.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *query.Status})
	}
	return builder
}

// Update persists all mutable fields of the attendance record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.Attendance) error {
	sql, args, err := psql.Update("attendance").
		Set("student_id", record.StudentID).
		Set("class_subject_id", record.ClassSubjectID).
		Set("date", record.Date).
		Set("status", record.Status).
		Set("remarks", record.Remarks).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, "attendance_student_id_class_subject_id_date_key") {
			return apperrors.ErrAttendanceAlreadyMarked
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced student or class subject does not exist")
		}
		logger.Error().Err(err).Int64("attendanceID", record.ID).Msg("Error updating attendance record")
		return fmt.Errorf("error updating attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// Delete removes an attendance record.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM attendance WHERE id = $1", id)
	if err != nil {
		logger.Error().Err(err).Int64("attendanceID", id).Msg("Error deleting attendance record")
		return fmt.Errorf("error deleting attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

func scanAttendance(row pgx.Row, record *models.Attendance) error {
	return row.Scan(
		&record.ID, &record.StudentID, &record.ClassSubjectID, &record.Date,
		&record.Status, &record.Remarks, &record.MarkedByID,
		&record.CreatedAt, &record.UpdatedAt,
	)
}
