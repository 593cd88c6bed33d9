package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/auth"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/middleware"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// StudentController serves the student profile collection.
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController.
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// List returns a page of students.
func (ctrl *StudentController) List(c *gin.Context) {
	ctrl.list(c, false)
}

// Active returns a page of active students only.
func (ctrl *StudentController) Active(c *gin.Context) {
	ctrl.list(c, true)
}

func (ctrl *StudentController) list(c *gin.Context, activeOnly bool) {
	actor := middleware.CurrentUser(c)
	action := auth.ActionList
	if activeOnly {
		action = auth.ActionActive
	}
	if err := auth.Require(actor, action, auth.ResourceStudent, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	students, count, err := ctrl.studentService.List(c.Request.Context(), activeOnly, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, students)
}

// Retrieve returns a single student.
func (ctrl *StudentController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionRetrieve, auth.ResourceStudent, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.studentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, student)
}

// Create enrolls a student. Teachers and staff.
func (ctrl *StudentController) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionCreate, auth.ResourceStudent, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	student, err := ctrl.studentService.Enroll(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, student)
}

// Update patches a student. Owner or staff; the owner is the identity behind
// the profile, so it is resolved before the policy check.
func (ctrl *StudentController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	student, err := ctrl.studentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionPartialUpdate, auth.ResourceStudent, &student.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updated, err := ctrl.studentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete removes a student profile. Owner or staff.
func (ctrl *StudentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	student, err := ctrl.studentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionDestroy, auth.ResourceStudent, &student.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.studentService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
