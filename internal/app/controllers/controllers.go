// Package controllers holds the HTTP handlers. Each handler authorizes the
// actor through the central policy, delegates to a service and writes the
// response envelope.
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// Controllers bundles all controllers for route wiring.
type Controllers struct {
	Auth       *AuthController
	Users      *UserController
	Students   *StudentController
	Teachers   *TeacherController
	Courses    *CourseController
	Attendance *AttendanceController
	Exams      *ExamController
	Grades     *GradeController
}

// NewControllers creates all controllers on top of the services.
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svcs.Auth),
		Users:      NewUserController(svcs.Users),
		Students:   NewStudentController(svcs.Students),
		Teachers:   NewTeacherController(svcs.Teachers),
		Courses:    NewCourseController(svcs.Courses),
		Attendance: NewAttendanceController(svcs.Attendance),
		Exams:      NewExamController(svcs.Exams),
		Grades:     NewGradeController(svcs.Grades),
	}
}

// parseIDParam reads the :id path parameter as an int64.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid id parameter")))
		return 0, false
	}
	return id, true
}

// respondValidationError writes a 400 for a request body that failed binding.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
}

// respondData writes a single object in the standard envelope.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.APIResponse{Data: data, Timestamp: time.Now()})
}

// respondPage writes a list in the paginated envelope.
func respondPage(c *gin.Context, count int64, page, size int, results interface{}) {
	c.JSON(http.StatusOK, helpers.NewPagedResponse(c, count, page, size, results))
}
