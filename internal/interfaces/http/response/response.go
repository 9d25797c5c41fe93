package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "marketly.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Validation taxonomy errors map to 422,
// sentinel errors to their conventional statuses, everything else to 500.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// ErrorWithStatus sends an error response with a specific status and message
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case domainerrors.IsValidation(err):
		return domainerrors.Unprocessable(err)
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.NewAppError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, domainerrors.ErrBadRequest), errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
