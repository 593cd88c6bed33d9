package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/auth"
	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/app/services"
	"github.com/medhashaala/erp/internal/middleware"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/helpers"
)

// UserController serves the identity collection.
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// List returns a page of users. Staff only.
func (ctrl *UserController) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionList, auth.ResourceUser, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	page, size := helpers.PageParams(c)
	offset, limit := helpers.OffsetLimit(page, size)
	users, count, err := ctrl.userService.List(c.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondPage(c, count, page, size, users)
}

// Retrieve returns a single user. Owner or staff.
func (ctrl *UserController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionRetrieve, auth.ResourceUser, &id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	user, err := ctrl.userService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

// Me returns the authenticated user's own identity.
func (ctrl *UserController) Me(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionMe, auth.ResourceUser, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, actor)
}

// Create creates a standalone identity. Staff only.
func (ctrl *UserController) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionCreate, auth.ResourceUser, nil); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := ctrl.userService.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, user)
}

// Update patches a user. Owner or staff.
func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionPartialUpdate, auth.ResourceUser, &id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	// Role and staff escalation stays with staff even for the owner.
	if !actor.IsStaff && (req.UserType != nil || req.IsStaff != nil) {
		middleware.HandleAPIError(c, apperrors.ErrPermissionDenied)
		return
	}

	user, err := ctrl.userService.Update(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

// Delete removes a user. Owner or staff.
func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actor := middleware.CurrentUser(c)
	if err := auth.Require(actor, auth.ActionDestroy, auth.ResourceUser, &id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.userService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
