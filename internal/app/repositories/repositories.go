package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx. Write
// methods with a Tx variant funnel through it so enrollment can run both
// sides of a compound write in one transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds queries with PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// joinColumns prefixes two column sets with their table aliases for joined
// selects.
func joinColumns(leftAlias string, leftCols []string, rightAlias string, rightCols []string) []string {
	cols := make([]string, 0, len(leftCols)+len(rightCols))
	for _, c := range leftCols {
		cols = append(cols, leftAlias+"."+c)
	}
	for _, c := range rightCols {
		cols = append(cols, rightAlias+"."+c)
	}
	return cols
}

// Repositories bundles all repositories for dependency wiring.
type Repositories struct {
	Users         *UserRepository
	Students      *StudentRepository
	Teachers      *TeacherRepository
	AcademicYears *AcademicYearRepository
	Classes       *ClassRepository
	Subjects      *SubjectRepository
	ClassSubjects *ClassSubjectRepository
	Attendance    *AttendanceRepository
	ExamTypes     *ExamTypeRepository
	Exams         *ExamRepository
	Grades        *GradeRepository
}

// NewRepositories creates all repositories backed by the given pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(db),
		Students:      NewStudentRepository(db),
		Teachers:      NewTeacherRepository(db),
		AcademicYears: NewAcademicYearRepository(db),
		Classes:       NewClassRepository(db),
		Subjects:      NewSubjectRepository(db),
		ClassSubjects: NewClassSubjectRepository(db),
		Attendance:    NewAttendanceRepository(db),
		ExamTypes:     NewExamTypeRepository(db),
		Exams:         NewExamRepository(db),
		Grades:        NewGradeRepository(db),
	}
}
