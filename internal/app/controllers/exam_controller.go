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

// ExamController serves the exam type and exam collections.
type ExamController struct {
	examService *services.ExamService
}

// NewExamController creates a new ExamController.
func NewExamController(examService *services.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

func (ctrl *ExamController) require(c *gin.Context, action auth.Action, resource auth.Resource) bool {
	if err := auth.Require(middleware.CurrentUser(c), action, resource, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return false
	}
	return true
}

// ListExamTypes returns a page of exam types.
func (ctrl *ExamController) ListExamTypes(c *gin.Context) {
	if !ctrl.require(c, auth.ActionList, auth.ResourceExamType) {
		return
	}
	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	examTypes, count, err := ctrl.examService.ListExamTypes(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, examTypes)
}

// RetrieveExamType returns a single exam type.
func (ctrl *ExamController) RetrieveExamType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionRetrieve, auth.ResourceExamType) {
		return
	}
	examType, err := ctrl.examService.GetExamType(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, examType)
}

// CreateExamType creates an exam type. Teachers and staff.
func (ctrl *ExamController) CreateExamType(c *gin.Context) {
	if !ctrl.require(c, auth.ActionCreate, auth.ResourceExamType) {
		return
	}
	var req dto.CreateExamTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	examType, err := ctrl.examService.CreateExamType(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, examType)
}

// UpdateExamType patches an exam type. Teachers and staff.
func (ctrl *ExamController) UpdateExamType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionPartialUpdate, auth.ResourceExamType) {
		return
	}
	var req dto.UpdateExamTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	examType, err := ctrl.examService.UpdateExamType(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, examType)
}

// DeleteExamType removes an exam type. Teachers and staff.
func (ctrl *ExamController) DeleteExamType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionDestroy, auth.ResourceExamType) {
		return
	}
	if err := ctrl.examService.DeleteExamType(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListExams returns a page of exams.
func (ctrl *ExamController) ListExams(c *gin.Context) {
	if !ctrl.require(c, auth.ActionList, auth.ResourceExam) {
		return
	}
	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	exams, count, err := ctrl.examService.ListExams(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, exams)
}

// RetrieveExam returns a single exam.
func (ctrl *ExamController) RetrieveExam(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionRetrieve, auth.ResourceExam) {
		return
	}
	exam, err := ctrl.examService.GetExam(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, exam)
}

// CreateExam schedules an exam. Teachers and staff.
func (ctrl *ExamController) CreateExam(c *gin.Context) {
	if !ctrl.require(c, auth.ActionCreate, auth.ResourceExam) {
		return
	}
	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	exam, err := ctrl.examService.CreateExam(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, exam)
}

// UpdateExam patches an exam. Teachers and staff.
func (ctrl *ExamController) UpdateExam(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionPartialUpdate, auth.ResourceExam) {
		return
	}
	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	exam, err := ctrl.examService.UpdateExam(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, exam)
}

// DeleteExam removes an exam. Teachers and staff.
func (ctrl *ExamController) DeleteExam(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionDestroy, auth.ResourceExam) {
		return
	}
	if err := ctrl.examService.DeleteExam(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
