package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/interfaces/http/response"
)

type PlatformFeeService interface {
	Create(ctx context.Context, input *entities.CreatePlatformFeeInput) (*entities.PlatformFee, error)
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.PlatformFee, error)
}

// PlatformFeeHandler handles admin fee configuration endpoints
type PlatformFeeHandler struct {
	feeUsecase PlatformFeeService
}

// NewPlatformFeeHandler creates a new platform fee handler
func NewPlatformFeeHandler(feeUsecase PlatformFeeService) *PlatformFeeHandler {
	return &PlatformFeeHandler{feeUsecase: feeUsecase}
}

// Create creates a fee row, activating it when requested
// POST /api/v1/admin/fees
func (h *PlatformFeeHandler) Create(c *gin.Context) {
	var input entities.CreatePlatformFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	fee, err := h.feeUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"fee": fee})
}

// Activate makes a fee row the single active one for its type
// POST /api/v1/admin/fees/:id/activate
func (h *PlatformFeeHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid fee ID"))
		return
	}

	if err := h.feeUsecase.Activate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"activated": true})
}

// Deactivate turns a fee row off
// POST /api/v1/admin/fees/:id/deactivate
func (h *PlatformFeeHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid fee ID"))
		return
	}

	if err := h.feeUsecase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

// List lists all fee rows
// GET /api/v1/admin/fees
func (h *PlatformFeeHandler) List(c *gin.Context) {
	fees, err := h.feeUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"fees": fees})
}
