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

type BookingService interface {
	Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateBookingStatusInput) (*entities.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Booking, error)
	List(ctx context.Context, merchantID *uuid.UUID, status *entities.BookingStatus, limit, offset int) ([]*entities.Booking, int64, error)
}

// BookingHandler handles time-slot booking endpoints
type BookingHandler struct {
	bookingUsecase BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase BookingService) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// Create books a time slot on a service
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var input entities.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	booking, err := h.bookingUsecase.Create(c.Request.Context(), customerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": booking})
}

// Get gets a booking by ID
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid booking ID"))
		return
	}

	booking, err := h.bookingUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// UpdateStatus applies a transition to a booking
// PATCH /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid booking ID"))
		return
	}

	var input entities.UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	booking, err := h.bookingUsecase.UpdateStatus(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// List lists bookings, scoped to the caller's merchant unless admin
// GET /api/v1/bookings?status=pending&page=1&limit=20
func (h *BookingHandler) List(c *gin.Context) {
	merchantID, err := listMerchantScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var status *entities.BookingStatus
	if s := c.Query("status"); s != "" {
		bs := entities.BookingStatus(s)
		if !bs.IsValid() {
			response.Error(c, domainerrors.BadRequest("Invalid booking status"))
			return
		}
		status = &bs
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	bookings, total, err := h.bookingUsecase.List(c.Request.Context(), merchantID, status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// listMerchantScope resolves the merchant filter for list endpoints.
// Admins may filter any merchant via ?merchantId=; merchants always see
// their own records only.
func listMerchantScope(c *gin.Context) (*uuid.UUID, error) {
	role, _ := middleware.GetUserRole(c)
	if role == middleware.RoleAdmin {
		if s := c.Query("merchantId"); s != "" {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, domainerrors.BadRequest("Invalid merchant ID")
			}
			return &id, nil
		}
		return nil, nil
	}

	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		return nil, domainerrors.Forbidden("Merchant account required")
	}
	return &merchantID, nil
}
