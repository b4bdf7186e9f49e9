package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. All controllers go
// through here so each error condition has exactly one status code and
// error code.
func HandleAPIError(c *gin.Context, err error) {
	// A CustomError carries a caller-facing message for its wrapped sentinel
	message := ""
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	respond := func(status int, code dto.ErrorCode, defaultMessage string) {
		if message == "" {
			message = defaultMessage
		}
		errorDetail := dto.NewErrorDetail(code, message)
		if customErr != nil && customErr.Details != nil {
			errorDetail = errorDetail.WithDetails(customErr.Details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrIllegalTransition):
		respond(http.StatusConflict, dto.ErrorCodeIllegalTransition, "Illegal status transition")

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		respond(http.StatusConflict, dto.ErrorCodeResourceConflict, "Already registered for this event")
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		respond(http.StatusConflict, dto.ErrorCodeResourceConflict, "Already applied to this job")
	case errors.Is(err, apperrors.ErrEventFull):
		respond(http.StatusConflict, dto.ErrorCodeResourceConflict, "Event has reached maximum capacity")
	case errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeResourceConflict, "Conflict")

	case errors.Is(err, apperrors.ErrEventNotRegistrable):
		respond(http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Event is not open for registration")
	case errors.Is(err, apperrors.ErrNotRegistered):
		respond(http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Not registered for this event")
	case errors.Is(err, apperrors.ErrJobNotPublished):
		respond(http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Job is not accepting applications")

	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrProjectNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Project not found")
	case errors.Is(err, apperrors.ErrEventNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Event not found")
	case errors.Is(err, apperrors.ErrJobNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Job not found")
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Application not found")
	case errors.Is(err, apperrors.ErrSuggestionNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Suggestion not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	case errors.Is(err, apperrors.ErrRateLimited):
		respond(http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "Too many requests")

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleValidationError converts a request binding failure to a 400 response
func HandleValidationError(c *gin.Context, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
