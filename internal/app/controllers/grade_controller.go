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

// GradeController serves the grade collection. Every response carries the
// derived percentage and pass projections.
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController.
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// List returns a page of grades.
func (ctrl *GradeController) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionList, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	grades, count, err := ctrl.gradeService.List(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, grades)
}

// ByStudent returns one student's grades. The student is selected with the
// student_id query parameter.
func (ctrl *GradeController) ByStudent(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionByStudent, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	studentID, ok := parseQueryID(c, "student_id")
	if !ok {
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	grades, count, err := ctrl.gradeService.ListByStudent(c.Request.Context(), studentID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, grades)
}

// ByClass returns the grades of every exam held for one class. The class is
// selected with the class_id query parameter.
func (ctrl *GradeController) ByClass(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionByClass, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	classID, ok := parseQueryID(c, "class_id")
	if !ok {
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	grades, count, err := ctrl.gradeService.ListByClass(c.Request.Context(), classID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, grades)
}

// ByExam returns all grades recorded for one exam, selected by the :id path
// parameter of the exam collection.
func (ctrl *GradeController) ByExam(c *gin.Context) {
	examID, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionGrades, auth.ResourceExam, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	grades, count, err := ctrl.gradeService.ListByExam(c.Request.Context(), examID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, grades)
}

// Retrieve returns a single grade.
func (ctrl *GradeController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionRetrieve, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	grade, err := ctrl.gradeService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, grade)
}

// Create records a grade. Teachers and staff; the actor is stamped as the
// grader.
func (ctrl *GradeController) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionCreate, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	grade, err := ctrl.gradeService.Record(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, grade)
}

// Update patches a grade. Teachers and staff.
func (ctrl *GradeController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionPartialUpdate, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	grade, err := ctrl.gradeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, grade)
}

// Delete removes a grade. Teachers and staff.
func (ctrl *GradeController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionDestroy, auth.ResourceGrade, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.gradeService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
