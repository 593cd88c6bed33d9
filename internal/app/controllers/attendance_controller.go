package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/auth"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/middleware"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// AttendanceController serves the attendance record collection.
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController.
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// List returns a page of attendance records, optionally filtered by
// student, class_subject, date and status query parameters.
func (ctrl *AttendanceController) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionList, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	filter, ok := parseAttendanceFilter(c)
	if !ok {
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	records, count, err := ctrl.attendanceService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, records)
}

// ByStudent returns one student's attendance records. The student is
// selected with the student_id query parameter.
func (ctrl *AttendanceController) ByStudent(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionByStudent, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	studentID, ok := parseQueryID(c, "student_id")
	if !ok {
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	records, count, err := ctrl.attendanceService.ListByStudent(c.Request.Context(), studentID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, records)
}

// ByClass returns the attendance records of all subjects taught to one
// class. The class is selected with the class_id query parameter.
func (ctrl *AttendanceController) ByClass(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionByClass, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	classID, ok := parseQueryID(c, "class_id")
	if !ok {
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	records, count, err := ctrl.attendanceService.ListByClass(c.Request.Context(), classID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, records)
}

// Retrieve returns a single attendance record.
func (ctrl *AttendanceController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionRetrieve, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	record, err := ctrl.attendanceService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, record)
}

// Create records attendance. Teachers and staff; the actor is stamped as
// the recorder.
func (ctrl *AttendanceController) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionCreate, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	record, err := ctrl.attendanceService.Mark(c.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, record)
}

// Update patches an attendance record. Teachers and staff.
func (ctrl *AttendanceController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionPartialUpdate, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	record, err := ctrl.attendanceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, record)
}

// Delete removes an attendance record. Teachers and staff.
func (ctrl *AttendanceController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionDestroy, auth.ResourceAttendance, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.attendanceService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseAttendanceFilter(c *gin.Context) (*dto.AttendanceFilter, bool) {
	filter := &dto.AttendanceFilter{}

	if raw := c.Query("student"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondInvalidQueryParam(c, "student")
			return nil, false
		}
		filter.StudentID = &id
	}
	if raw := c.Query("class_subject"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondInvalidQueryParam(c, "class_subject")
			return nil, false
		}
		filter.ClassSubjectID = &id
	}
	if raw := c.Query("date"); raw != "" {
		if _, err := helpers.ParseDate(raw); err != nil {
			respondInvalidQueryParam(c, "date")
			return nil, false
		}
		date := raw
		filter.Date = &date
	}
	if raw := c.Query("status"); raw != "" {
		status := raw
		filter.Status = &status
	}
	return filter, true
}

// parseQueryID reads a required int64 query parameter.
func parseQueryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		respondInvalidQueryParam(c, name)
		return 0, false
	}
	return id, true
}

func respondInvalidQueryParam(c *gin.Context, name string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "invalid query parameter").WithField(name)))
}
