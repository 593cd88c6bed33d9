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

// CourseController serves the organisational collections: academic years,
// classes, subjects, class-subject assignments and the derived section list.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

func (ctrl *CourseController) require(c *gin.Context, action auth.Action, resource auth.Resource) bool {
	if err := auth.Require(middleware.CurrentUser(c), action, resource, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return false
	}
	return true
}

// ListAcademicYears returns a page of academic years.
func (ctrl *CourseController) ListAcademicYears(c *gin.Context) {
	if !ctrl.require(c, auth.ActionList, auth.ResourceAcademicYear) {
		return
	}
	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	years, count, err := ctrl.courseService.ListAcademicYears(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, years)
}

// RetrieveAcademicYear returns a single academic year.
func (ctrl *CourseController) RetrieveAcademicYear(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionRetrieve, auth.ResourceAcademicYear) {
		return
	}
	year, err := ctrl.courseService.GetAcademicYear(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, year)
}

// CreateAcademicYear creates an academic year. Staff only.
func (ctrl *CourseController) CreateAcademicYear(c *gin.Context) {
	if !ctrl.require(c, auth.ActionCreate, auth.ResourceAcademicYear) {
		return
	}
	var req dto.CreateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	year, err := ctrl.courseService.CreateAcademicYear(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, year)
}

// UpdateAcademicYear patches an academic year. Staff only.
func (ctrl *CourseController) UpdateAcademicYear(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionPartialUpdate, auth.ResourceAcademicYear) {
		return
	}
	var req dto.UpdateAcademicYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	year, err := ctrl.courseService.UpdateAcademicYear(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, year)
}

// DeleteAcademicYear removes an academic year. Staff only.
func (ctrl *CourseController) DeleteAcademicYear(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionDestroy, auth.ResourceAcademicYear) {
		return
	}
	if err := ctrl.courseService.DeleteAcademicYear(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListClasses returns a page of classes.
func (ctrl *CourseController) ListClasses(c *gin.Context) {
	if !ctrl.require(c, auth.ActionList, auth.ResourceClass) {
		return
	}
	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	classes, count, err := ctrl.courseService.ListClasses(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, classes)
}

// RetrieveClass returns a single class.
func (ctrl *CourseController) RetrieveClass(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionRetrieve, auth.ResourceClass) {
		return
	}
	class, err := ctrl.courseService.GetClass(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, class)
}

// CreateClass creates a class. Staff only.
func (ctrl *CourseController) CreateClass(c *gin.Context) {
	if !ctrl.require(c, auth.ActionCreate, auth.ResourceClass) {
		return
	}
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	class, err := ctrl.courseService.CreateClass(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, class)
}

// UpdateClass patches a class. Staff only.
func (ctrl *CourseController) UpdateClass(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionPartialUpdate, auth.ResourceClass) {
		return
	}
	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	class, err := ctrl.courseService.UpdateClass(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, class)
}

// DeleteClass removes a class. Staff only.
func (ctrl *CourseController) DeleteClass(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionDestroy, auth.ResourceClass) {
		return
	}
	if err := ctrl.courseService.DeleteClass(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClassSubjects returns all subject assignments of one class.
func (ctrl *CourseController) ClassSubjects(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionSubjects, auth.ResourceClass) {
		return
	}
	assignments, err := ctrl.courseService.ClassSubjects(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, assignments)
}

// Sections returns the derived section list. Sections have no table of
// their own; the list is computed from every class's sections string.
func (ctrl *CourseController) Sections(c *gin.Context) {
	if !ctrl.require(c, auth.ActionSections, auth.ResourceSection) {
		return
	}
	sections, err := ctrl.courseService.Sections(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	// The whole list always fits one page.
	c.JSON(http.StatusOK, dto.PagedResponse{Count: int64(len(sections)), Results: sections})
}

// ListSubjects returns a page of subjects.
func (ctrl *CourseController) ListSubjects(c *gin.Context) {
	if !ctrl.require(c, auth.ActionList, auth.ResourceSubject) {
		return
	}
	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	subjects, count, err := ctrl.courseService.ListSubjects(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, subjects)
}

// RetrieveSubject returns a single subject.
func (ctrl *CourseController) RetrieveSubject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionRetrieve, auth.ResourceSubject) {
		return
	}
	subject, err := ctrl.courseService.GetSubject(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, subject)
}

// CreateSubject creates a subject. Staff only.
func (ctrl *CourseController) CreateSubject(c *gin.Context) {
	if !ctrl.require(c, auth.ActionCreate, auth.ResourceSubject) {
		return
	}
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	subject, err := ctrl.courseService.CreateSubject(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, subject)
}

// UpdateSubject patches a subject. Staff only.
func (ctrl *CourseController) UpdateSubject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionPartialUpdate, auth.ResourceSubject) {
		return
	}
	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	subject, err := ctrl.courseService.UpdateSubject(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, subject)
}

// DeleteSubject removes a subject. Staff only.
func (ctrl *CourseController) DeleteSubject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionDestroy, auth.ResourceSubject) {
		return
	}
	if err := ctrl.courseService.DeleteSubject(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListClassSubjects returns a page of class-subject assignments.
func (ctrl *CourseController) ListClassSubjects(c *gin.Context) {
	if !ctrl.require(c, auth.ActionList, auth.ResourceClassSubject) {
		return
	}
	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	assignments, count, err := ctrl.courseService.ListClassSubjects(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, assignments)
}

// RetrieveClassSubject returns a single assignment.
func (ctrl *CourseController) RetrieveClassSubject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionRetrieve, auth.ResourceClassSubject) {
		return
	}
	cs, err := ctrl.courseService.GetClassSubject(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, cs)
}

// CreateClassSubject assigns a subject to a class. Staff only.
func (ctrl *CourseController) CreateClassSubject(c *gin.Context) {
	if !ctrl.require(c, auth.ActionCreate, auth.ResourceClassSubject) {
		return
	}
	var req dto.CreateClassSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	cs, err := ctrl.courseService.CreateClassSubject(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, cs)
}

// UpdateClassSubject patches an assignment. Staff only.
func (ctrl *CourseController) UpdateClassSubject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionPartialUpdate, auth.ResourceClassSubject) {
		return
	}
	var req dto.UpdateClassSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	cs, err := ctrl.courseService.UpdateClassSubject(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, cs)
}

// DeleteClassSubject removes an assignment. Staff only.
func (ctrl *CourseController) DeleteClassSubject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok || !ctrl.require(c, auth.ActionDestroy, auth.ResourceClassSubject) {
		return
	}
	if err := ctrl.courseService.DeleteClassSubject(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
