package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	domainerrors "marketly.backend/internal/domain/errors"
)

// OrderStatus represents the state of a product/service order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderTransitions: completed is reachable only from ready (pickup) or
// delivering (delivery), never directly from processing or pending.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusReceived, OrderStatusCancelled},
	OrderStatusReceived:   {OrderStatusProcessing},
	OrderStatusProcessing: {OrderStatusReady},
	OrderStatusReady:      {OrderStatusCompleted, OrderStatusDelivering},
	OrderStatusDelivering: {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// IsValid returns true if the status is a recognized order status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// ServiceOrder represents a product order against a sellable service.
// OrderNumber is unique, date-scoped sequential: ORD-YYYYMMDD-NNN.
type ServiceOrder struct {
	ID          uuid.UUID       `json:"id"`
	MerchantID  uuid.UUID       `json:"merchantId"`
	ServiceID   uuid.UUID       `json:"serviceId"`
	CustomerID  uuid.UUID       `json:"customerId"`
	OrderNumber string          `json:"orderNumber"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitLabel   null.String     `json:"unitLabel,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	FeeRate     decimal.Decimal `json:"feeRate"`
	FeeAmount   decimal.Decimal `json:"feeAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	ReceivedAt  null.Time       `json:"receivedAt,omitempty"`
	CompletedAt null.Time       `json:"completedAt,omitempty"`
	CancelledAt null.Time       `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ApplyStatus validates and applies a transition, stamping the one
// timestamp column matching the target status. The intermediate
// processing/ready/delivering states carry no timestamp of their own.
func (o *ServiceOrder) ApplyStatus(target OrderStatus, at time.Time) error {
	if !o.Status.CanTransitionTo(target) {
		return domainerrors.ErrInvalidTransition
	}
	switch target {
	case OrderStatusReceived:
		o.ReceivedAt = null.TimeFrom(at)
	case OrderStatusCompleted:
		o.CompletedAt = null.TimeFrom(at)
	case OrderStatusCancelled:
		o.CancelledAt = null.TimeFrom(at)
	}
	o.Status = target
	return nil
}

// CreateOrderInput represents input for creating a service order
type CreateOrderInput struct {
	ServiceID string `json:"serviceId" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"` // decimal, e.g. "5.5"
	UnitLabel string `json:"unitLabel,omitempty"`
}

// UpdateOrderStatusInput represents a requested order transition
type UpdateOrderStatusInput struct {
	Status OrderStatus `json:"status" binding:"required"`
}
