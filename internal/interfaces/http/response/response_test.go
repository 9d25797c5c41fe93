package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	domainerrors "marketly.backend/internal/domain/errors"
)

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestError_AppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domainerrors.NotFound("missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "missing")
}

func TestError_ValidationTaxonomyIs422(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []error{
		domainerrors.ErrInvalidTransition,
		domainerrors.ErrMissingReason,
		domainerrors.ErrSlotAtCapacity,
		domainerrors.ErrOutsideScheduleHours,
		domainerrors.ErrSlotUnavailable,
		domainerrors.ErrInvalidDateRange,
		domainerrors.ErrCapacityExceeded,
	}
	for _, err := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, err)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, err.Error())
		assert.Contains(t, w.Body.String(), err.Error())
	}
}

func TestError_WrappedValidationErrorIs422(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, fmt.Errorf("update booking: %w", domainerrors.ErrInvalidTransition))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestError_SentinelMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound},
		{domainerrors.ErrAlreadyExists, http.StatusConflict},
		{domainerrors.ErrBadRequest, http.StatusBadRequest},
		{domainerrors.ErrInvalidInput, http.StatusBadRequest},
		{domainerrors.ErrUnauthorized, http.StatusUnauthorized},
		{domainerrors.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestError_GenericErrorHidesDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestErrorWithStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithStatus(c, http.StatusBadRequest, "bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"bad"`)
}
