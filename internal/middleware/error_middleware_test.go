package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/itcommunity/platform/internal/pkg/apperrors"
)

func performError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)
	return w
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"illegal transition", apperrors.ErrIllegalTransition, http.StatusConflict},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"already registered", apperrors.ErrAlreadyRegistered, http.StatusConflict},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"event full", apperrors.ErrEventFull, http.StatusConflict},
		{"not registered", apperrors.ErrNotRegistered, http.StatusBadRequest},
		{"job not accepting", apperrors.ErrJobNotPublished, http.StatusBadRequest},
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"project not found", apperrors.ErrProjectNotFound, http.StatusNotFound},
		{"suggestion not found", apperrors.ErrSuggestionNotFound, http.StatusNotFound},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performError(t, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestHandleAPIErrorCustomMessage(t *testing.T) {
	w := performError(t, apperrors.NewForbiddenError("you do not own this project"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "you do not own this project")
}

func TestHandleAPIErrorIllegalTransitionMessage(t *testing.T) {
	w := performError(t, apperrors.NewIllegalTransitionError("cannot move project from ARCHIVED to PUBLISHED"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ARCHIVED")
}
