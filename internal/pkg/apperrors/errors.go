package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Project errors
var (
	ErrProjectNotFound = errors.New("project not found")
)

// Event errors
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventFull           = errors.New("event has reached maximum capacity")
	ErrAlreadyRegistered   = errors.New("already registered for this event")
	ErrNotRegistered       = errors.New("not registered for this event")
	ErrEventNotRegistrable = errors.New("event is not open for registration")
)

// Job errors
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("job application not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrJobNotPublished     = errors.New("job is not accepting applications")
)

// Suggestion errors
var (
	ErrSuggestionNotFound = errors.New("suggestion not found")
)

// Status transition errors
var (
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Rate limiting
var (
	ErrRateLimited = errors.New("too many requests")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewIllegalTransitionError creates a conflict error describing a rejected status change
func NewIllegalTransitionError(message string) error {
	return &CustomError{
		Err:     ErrIllegalTransition,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
