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

// TeacherController serves the teacher profile collection.
type TeacherController struct {
	teacherService *services.TeacherService
}

// NewTeacherController creates a new TeacherController.
func NewTeacherController(teacherService *services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// List returns a page of teachers.
func (ctrl *TeacherController) List(c *gin.Context) {
	ctrl.list(c, false)
}

// Active returns a page of active teachers only.
func (ctrl *TeacherController) Active(c *gin.Context) {
	ctrl.list(c, true)
}

func (ctrl *TeacherController) list(c *gin.Context, activeOnly bool) {
	actor := middleware.CurrentUser(c)
	action := auth.ActionList
	if activeOnly {
		action = auth.ActionActive
	}
	if err := auth.Require(actor, action, auth.ResourceTeacher, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	teachers, count, err := ctrl.teacherService.List(c.Request.Context(), activeOnly, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, teachers)
}

// Retrieve returns a single teacher.
func (ctrl *TeacherController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionRetrieve, auth.ResourceTeacher, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	teacher, err := ctrl.teacherService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, teacher)
}

// Create enrolls a teacher. Staff only: teacher profile creation is
// deliberately narrower than student enrollment.
func (ctrl *TeacherController) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionCreate, auth.ResourceTeacher, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	teacher, err := ctrl.teacherService.Enroll(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, teacher)
}

// Update patches a teacher. Owner or staff.
func (ctrl *TeacherController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	teacher, err := ctrl.teacherService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionPartialUpdate, auth.ResourceTeacher, &teacher.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updated, err := ctrl.teacherService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

// Delete removes a teacher profile. Owner or staff.
func (ctrl *TeacherController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	teacher, err := ctrl.teacherService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionDestroy, auth.ResourceTeacher, &teacher.UserID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.teacherService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
