// Package routes wires the HTTP surface onto the gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/controllers"
	"github.com/medhashaala/erp/internal/app/repositories"
	"github.com/medhashaala/erp/internal/middleware"
	"github.com/medhashaala/erp/internal/pkg/auth"
)

// RegisterRoutes mounts all endpoints. The token endpoint is the only
// unauthenticated one; everything under /api/ requires a valid token.
func RegisterRoutes(engine *gin.Engine, ctrls *controllers.Controllers, tokenService *auth.TokenService, users repositories.IUserRepository) {
	engine.POST("/api-token-auth/", ctrls.Auth.ObtainToken)

	api := engine.Group("/api")
	api.Use(middleware.AuthMiddleware(tokenService, users))

	userRoutes := api.Group("/users")
	{
		userRoutes.GET("/", ctrls.Users.List)
		userRoutes.POST("/", ctrls.Users.Create)
		userRoutes.GET("/me/", ctrls.Users.Me)
		userRoutes.GET("/:id/", ctrls.Users.Retrieve)
		userRoutes.PUT("/:id/", ctrls.Users.Update)
		userRoutes.PATCH("/:id/", ctrls.Users.Update)
		userRoutes.DELETE("/:id/", ctrls.Users.Delete)
	}

	studentRoutes := api.Group("/students")
	{
		studentRoutes.GET("/", ctrls.Students.List)
		studentRoutes.POST("/", ctrls.Students.Create)
		studentRoutes.GET("/active/", ctrls.Students.Active)
		studentRoutes.GET("/:id/", ctrls.Students.Retrieve)
		studentRoutes.PUT("/:id/", ctrls.Students.Update)
		studentRoutes.PATCH("/:id/", ctrls.Students.Update)
		studentRoutes.DELETE("/:id/", ctrls.Students.Delete)
	}

	teacherRoutes := api.Group("/teachers")
	{
		teacherRoutes.GET("/", ctrls.Teachers.List)
		teacherRoutes.POST("/", ctrls.Teachers.Create)
		teacherRoutes.GET("/active/", ctrls.Teachers.Active)
		teacherRoutes.GET("/:id/", ctrls.Teachers.Retrieve)
		teacherRoutes.PUT("/:id/", ctrls.Teachers.Update)
		teacherRoutes.PATCH("/:id/", ctrls.Teachers.Update)
		teacherRoutes.DELETE("/:id/", ctrls.Teachers.Delete)
	}

	yearRoutes := api.Group("/academic-years")
	{
		yearRoutes.GET("/", ctrls.Courses.ListAcademicYears)
		yearRoutes.POST("/", ctrls.Courses.CreateAcademicYear)
		yearRoutes.GET("/:id/", ctrls.Courses.RetrieveAcademicYear)
		yearRoutes.PUT("/:id/", ctrls.Courses.UpdateAcademicYear)
		yearRoutes.PATCH("/:id/", ctrls.Courses.UpdateAcademicYear)
		yearRoutes.DELETE("/:id/", ctrls.Courses.DeleteAcademicYear)
	}

	classRoutes := api.Group("/classes")
	{
		classRoutes.GET("/", ctrls.Courses.ListClasses)
		classRoutes.POST("/", ctrls.Courses.CreateClass)
		classRoutes.GET("/:id/", ctrls.Courses.RetrieveClass)
		classRoutes.PUT("/:id/", ctrls.Courses.UpdateClass)
		classRoutes.PATCH("/:id/", ctrls.Courses.UpdateClass)
		classRoutes.DELETE("/:id/", ctrls.Courses.DeleteClass)
		classRoutes.GET("/:id/subjects/", ctrls.Courses.ClassSubjects)
	}

	api.GET("/sections/", ctrls.Courses.Sections)

	subjectRoutes := api.Group("/subjects")
	{
		subjectRoutes.GET("/", ctrls.Courses.ListSubjects)
		subjectRoutes.POST("/", ctrls.Courses.CreateSubject)
		subjectRoutes.GET("/:id/", ctrls.Courses.RetrieveSubject)
		subjectRoutes.PUT("/:id/", ctrls.Courses.UpdateSubject)
		subjectRoutes.PATCH("/:id/", ctrls.Courses.UpdateSubject)
		subjectRoutes.DELETE("/:id/", ctrls.Courses.DeleteSubject)
	}

	classSubjectRoutes := api.Group("/class-subjects")
	{
		classSubjectRoutes.GET("/", ctrls.Courses.ListClassSubjects)
		classSubjectRoutes.POST("/", ctrls.Courses.CreateClassSubject)
		classSubjectRoutes.GET("/:id/", ctrls.Courses.RetrieveClassSubject)
		classSubjectRoutes.PUT("/:id/", ctrls.Courses.UpdateClassSubject)
		classSubjectRoutes.PATCH("/:id/", ctrls.Courses.UpdateClassSubject)
		classSubjectRoutes.DELETE("/:id/", ctrls.Courses.DeleteClassSubject)
	}

	attendanceRoutes := api.Group("/attendance")
	{
		attendanceRoutes.GET("/", ctrls.Attendance.List)
		attendanceRoutes.POST("/", ctrls.Attendance.Create)
		attendanceRoutes.GET("/by_student/", ctrls.Attendance.ByStudent)
		attendanceRoutes.GET("/by_class/", ctrls.Attendance.ByClass)
		attendanceRoutes.GET("/:id/", ctrls.Attendance.Retrieve)
		attendanceRoutes.PUT("/:id/", ctrls.Attendance.Update)
		attendanceRoutes.PATCH("/:id/", ctrls.Attendance.Update)
		attendanceRoutes.DELETE("/:id/", ctrls.Attendance.Delete)
	}

	examTypeRoutes := api.Group("/exam-types")
	{
		examTypeRoutes.GET("/", ctrls.Exams.ListExamTypes)
		examTypeRoutes.POST("/", ctrls.Exams.CreateExamType)
		examTypeRoutes.GET("/:id/", ctrls.Exams.RetrieveExamType)
		examTypeRoutes.PUT("/:id/", ctrls.Exams.UpdateExamType)
		examTypeRoutes.PATCH("/:id/", ctrls.Exams.UpdateExamType)
		examTypeRoutes.DELETE("/:id/", ctrls.Exams.DeleteExamType)
	}

	examRoutes := api.Group("/exams")
	{
		examRoutes.GET("/", ctrls.Exams.ListExams)
		examRoutes.POST("/", ctrls.Exams.CreateExam)
		examRoutes.GET("/:id/", ctrls.Exams.RetrieveExam)
		examRoutes.PUT("/:id/", ctrls.Exams.UpdateExam)
		examRoutes.PATCH("/:id/", ctrls.Exams.UpdateExam)
		examRoutes.DELETE("/:id/", ctrls.Exams.DeleteExam)
		examRoutes.GET("/:id/grades/", ctrls.Grades.ByExam)
	}

	gradeRoutes := api.Group("/grades")
	{
		gradeRoutes.GET("/", ctrls.Grades.List)
		gradeRoutes.POST("/", ctrls.Grades.Create)
		gradeRoutes.GET("/by_student/", ctrls.Grades.ByStudent)
		gradeRoutes.GET("/by_class/", ctrls.Grades.ByClass)
		gradeRoutes.GET("/:id/", ctrls.Grades.Retrieve)
		gradeRoutes.PUT("/:id/", ctrls.Grades.Update)
		gradeRoutes.PATCH("/:id/", ctrls.Grades.Update)
		gradeRoutes.DELETE("/:id/", ctrls.Grades.Delete)
	}
}
