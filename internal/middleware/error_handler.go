package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhashaala/erp/internal/app/models/dto"
	"github.com/medhashaala/erp/internal/pkg/apperrors"
	"github.com/medhashaala/erp/internal/pkg/logger"
)

// HandleAPIError translates service errors into the standard error envelope.
// Controllers call it for every error path so status codes stay consistent
// across the API.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		detail := dto.NewErrorDetail(codeFor(customErr.Err), customErr.Error())
		if customErr.Field != "" {
			detail = detail.WithField(customErr.Field)
		}
		c.JSON(statusFor(customErr.Err), dto.NewErrorResponse(detail))
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(status, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "internal server error")))
		return
	}
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(codeFor(err), err.Error())))
}

func statusFor(err error) int {
	switch {
	case isNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden
	case isConflict(err):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error) dto.ErrorCode {
	switch {
	case isNotFound(err):
		return dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return dto.ErrorCodeUnauthorized
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.ErrorCodeInvalidCredentials
	case isConflict(err):
		return dto.ErrorCodeConflict
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrAccountDisabled):
		return dto.ErrorCodeValidationFailed
	default:
		return dto.ErrorCodeInternalServer
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrTeacherNotFound,
		apperrors.ErrAcademicYearNotFound,
		apperrors.ErrClassNotFound,
		apperrors.ErrSubjectNotFound,
		apperrors.ErrClassSubjectNotFound,
		apperrors.ErrAttendanceNotFound,
		apperrors.ErrExamTypeNotFound,
		apperrors.ErrExamNotFound,
		apperrors.ErrGradeNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, target := range []error{
		apperrors.ErrConflict,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrAdmissionNumberAlreadyExists,
		apperrors.ErrEmployeeIDAlreadyExists,
		apperrors.ErrAcademicYearAlreadyExists,
		apperrors.ErrClassAlreadyExists,
		apperrors.ErrSubjectCodeAlreadyExists,
		apperrors.ErrClassSubjectAlreadyExists,
		apperrors.ErrAttendanceAlreadyMarked,
		apperrors.ErrGradeAlreadyRecorded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
