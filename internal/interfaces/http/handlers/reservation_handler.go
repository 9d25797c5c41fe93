package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/interfaces/http/middleware"
	"marketly.backend/internal/interfaces/http/response"
	"marketly.backend/pkg/utils"
)

type ReservationService interface {
	Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateReservationInput) (*entities.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateReservationStatusInput) (*entities.Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Reservation, error)
	List(ctx context.Context, merchantID *uuid.UUID, status *entities.ReservationStatus, limit, offset int) ([]*entities.Reservation, int64, error)
}

// ReservationHandler handles date-range reservation endpoints
type ReservationHandler struct {
	reservationUsecase ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationUsecase ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationUsecase: reservationUsecase}
}

// Create reserves a date range on a rentable unit
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var input entities.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	reservation, err := h.reservationUsecase.Create(c.Request.Context(), customerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"reservation": reservation})
}

// Get gets a reservation by ID
// GET /api/v1/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid reservation ID"))
		return
	}

	reservation, err := h.reservationUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": reservation})
}

// UpdateStatus applies a transition to a reservation
// PATCH /api/v1/reservations/:id/status
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid reservation ID"))
		return
	}

	var input entities.UpdateReservationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reservation, err := h.reservationUsecase.UpdateStatus(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": reservation})
}

// List lists reservations, scoped to the caller's merchant unless admin
// GET /api/v1/reservations?status=confirmed&page=1&limit=20
func (h *ReservationHandler) List(c *gin.Context) {
	merchantID, err := listMerchantScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var status *entities.ReservationStatus
	if s := c.Query("status"); s != "" {
		rs := entities.ReservationStatus(s)
		if !rs.IsValid() {
			response.Error(c, domainerrors.BadRequest("Invalid reservation status"))
			return
		}
		status = &rs
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	reservations, total, err := h.reservationUsecase.List(c.Request.Context(), merchantID, status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reservations": reservations,
		"pagination":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
