package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)

// Transaction validation taxonomy. These are all client-visible
// validation failures (HTTP 422 at the API edge); callers branch on the
// sentinel with errors.Is, never on message text.
var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrMissingReason        = errors.New("a reason is required for this status change")
	ErrCannotTakeBookings   = errors.New("merchant cannot take bookings")
	ErrCannotSellProducts   = errors.New("merchant cannot sell products")
	ErrCannotRentUnits      = errors.New("merchant cannot rent units")
	ErrDateUnavailable      = errors.New("service is not available on this date")
	ErrOutsideScheduleHours = errors.New("requested time is outside schedule hours")
	ErrSlotAtCapacity       = errors.New("booking slot is at capacity")
	ErrInvalidDateRange     = errors.New("check-out must be after check-in")
	ErrSlotUnavailable      = errors.New("dates conflict with an existing reservation")
	ErrCapacityExceeded     = errors.New("guest count exceeds service capacity")
)

// validationErrors is the set mapped to 422 at the response layer.
var validationErrors = []error{
	ErrInvalidTransition,
	ErrMissingReason,
	ErrCannotTakeBookings,
	ErrCannotSellProducts,
	ErrCannotRentUnits,
	ErrDateUnavailable,
	ErrOutsideScheduleHours,
	ErrSlotAtCapacity,
	ErrInvalidDateRange,
	ErrSlotUnavailable,
	ErrCapacityExceeded,
}

// IsValidation reports whether err belongs to the validation taxonomy.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// Unprocessable wraps a validation taxonomy error for the API edge.
func Unprocessable(err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, err.Error(), err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
