package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	domainerrors "marketly.backend/internal/domain/errors"
)

// ReservationStatus represents the state of a unit reservation
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:    {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed:  {ReservationStatusCancelled, ReservationStatusCheckedIn},
	ReservationStatusCheckedIn:  {ReservationStatusCheckedOut},
	ReservationStatusCheckedOut: {},
	ReservationStatusCancelled:  {},
}

// IsValid returns true if the status is a recognized reservation status.
func (s ReservationStatus) IsValid() bool {
	_, ok := reservationTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	for _, t := range reservationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// BlocksDates reports whether a reservation in this status still claims
// its [check-in, check-out) interval. Only cancellation frees the dates.
func (s ReservationStatus) BlocksDates() bool {
	return s != ReservationStatusCancelled
}

// Reservation represents a unit rental over [CheckIn, CheckOut).
type Reservation struct {
	ID            uuid.UUID       `json:"id"`
	MerchantID    uuid.UUID       `json:"merchantId"`
	ServiceID     uuid.UUID       `json:"serviceId"`
	CustomerID    uuid.UUID       `json:"customerId"`
	CheckIn       time.Time       `json:"checkIn"`
	CheckOut      time.Time       `json:"checkOut"`
	Nights        int             `json:"nights"`
	GuestCount    int             `json:"guestCount"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	FeeRate       decimal.Decimal `json:"feeRate"`
	FeeAmount     decimal.Decimal `json:"feeAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        ReservationStatus `json:"status"`
	ConfirmedAt   null.Time       `json:"confirmedAt,omitempty"`
	CancelledAt   null.Time       `json:"cancelledAt,omitempty"`
	CheckedInAt   null.Time       `json:"checkedInAt,omitempty"`
	CheckedOutAt  null.Time       `json:"checkedOutAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ApplyStatus validates and applies a transition, stamping the one
// timestamp column matching the target status.
func (r *Reservation) ApplyStatus(target ReservationStatus, at time.Time) error {
	if !r.Status.CanTransitionTo(target) {
		return domainerrors.ErrInvalidTransition
	}
	switch target {
	case ReservationStatusConfirmed:
		r.ConfirmedAt = null.TimeFrom(at)
	case ReservationStatusCancelled:
		r.CancelledAt = null.TimeFrom(at)
	case ReservationStatusCheckedIn:
		r.CheckedInAt = null.TimeFrom(at)
	case ReservationStatusCheckedOut:
		r.CheckedOutAt = null.TimeFrom(at)
	}
	r.Status = target
	return nil
}

// CreateReservationInput represents input for creating a reservation
type CreateReservationInput struct {
	ServiceID  string `json:"serviceId" binding:"required"`
	CheckIn    string `json:"checkIn" binding:"required"`  // "2006-01-02"
	CheckOut   string `json:"checkOut" binding:"required"` // "2006-01-02"
	GuestCount int    `json:"guestCount,omitempty"`
}

// UpdateReservationStatusInput represents a requested reservation transition
type UpdateReservationStatusInput struct {
	Status ReservationStatus `json:"status" binding:"required"`
}
