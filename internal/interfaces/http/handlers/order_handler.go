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

type OrderService interface {
	Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateOrderInput) (*entities.ServiceOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateOrderStatusInput) (*entities.ServiceOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error)
	List(ctx context.Context, merchantID *uuid.UUID, status *entities.OrderStatus, limit, offset int) ([]*entities.ServiceOrder, int64, error)
}

// OrderHandler handles quantity-based order endpoints
type OrderHandler struct {
	orderUsecase OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase OrderService) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

// Create places an order for a sellable service
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var input entities.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	order, err := h.orderUsecase.Create(c.Request.Context(), customerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

// Get gets an order by ID
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid order ID"))
		return
	}

	order, err := h.orderUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// UpdateStatus applies a fulfillment transition to an order
// PATCH /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid order ID"))
		return
	}

	var input entities.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	order, err := h.orderUsecase.UpdateStatus(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// List lists orders, scoped to the caller's merchant unless admin
// GET /api/v1/orders?status=received&page=1&limit=20
func (h *OrderHandler) List(c *gin.Context) {
	merchantID, err := listMerchantScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var status *entities.OrderStatus
	if s := c.Query("status"); s != "" {
		os := entities.OrderStatus(s)
		if !os.IsValid() {
			response.Error(c, domainerrors.BadRequest("Invalid order status"))
			return
		}
		status = &os
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	orders, total, err := h.orderUsecase.List(c.Request.Context(), merchantID, status, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
