// Package services holds the business rules between the HTTP controllers and
// the repositories. Controllers decide who may call; services decide what
// happens.
package services

import (
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/db"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

// Services bundles all services for dependency wiring.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Students   *StudentService
	Teachers   *TeacherService
	Courses    *CourseService
	Attendance *AttendanceService
	Exams      *ExamService
	Grades     *GradeService
}

// NewServices creates all services on top of the repositories.
func NewServices(repos *repositories.Repositories, txRunner db.TxRunner, tokenService *auth.TokenService) *Services {
	return &Services{
		Auth:       NewAuthService(repos.Users, tokenService),
		Users:      NewUserService(repos.Users),
		Students:   NewStudentService(repos.Students, repos.Users, txRunner),
		Teachers:   NewTeacherService(repos.Teachers, repos.Users, txRunner),
		Courses:    NewCourseService(repos.AcademicYears, repos.Classes, repos.Subjects, repos.ClassSubjects),
		Attendance: NewAttendanceService(repos.Attendance),
		Exams:      NewExamService(repos.ExamTypes, repos.Exams),
		Grades:     NewGradeService(repos.Grades),
	}
}
