package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	domainerrors "marketly.backend/internal/domain/errors"
)

// BookingStatus represents the state of an appointment booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
	BookingStatusNoShow:    {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// CountsTowardCapacity reports whether a booking in this status
// occupies slot capacity. Cancelled and no-show bookings free the slot.
func (s BookingStatus) CountsTowardCapacity() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking represents an appointment for a bookable service. Fee fields
// are computed once at creation and never recomputed.
type Booking struct {
	ID           uuid.UUID       `json:"id"`
	MerchantID   uuid.UUID       `json:"merchantId"`
	ServiceID    uuid.UUID       `json:"serviceId"`
	CustomerID   uuid.UUID       `json:"customerId"`
	BookingDate  time.Time       `json:"bookingDate"`
	StartTime    string          `json:"startTime"` // "HH:MM"
	EndTime      string          `json:"endTime"`   // start + service duration
	PartySize    int             `json:"partySize"`
	Status       BookingStatus   `json:"status"`
	ServicePrice decimal.Decimal `json:"servicePrice"`
	FeeRate      decimal.Decimal `json:"feeRate"`
	FeeAmount    decimal.Decimal `json:"feeAmount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ConfirmedAt  null.Time       `json:"confirmedAt,omitempty"`
	CancelledAt  null.Time       `json:"cancelledAt,omitempty"`
	CompletedAt  null.Time       `json:"completedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ApplyStatus validates and applies a transition, stamping the one
// timestamp column matching the target status. No-show stamps nothing;
// its only record is the status itself.
func (b *Booking) ApplyStatus(target BookingStatus, at time.Time) error {
	if !b.Status.CanTransitionTo(target) {
		return domainerrors.ErrInvalidTransition
	}
	switch target {
	case BookingStatusConfirmed:
		b.ConfirmedAt = null.TimeFrom(at)
	case BookingStatusCancelled:
		b.CancelledAt = null.TimeFrom(at)
	case BookingStatusCompleted:
		b.CompletedAt = null.TimeFrom(at)
	}
	b.Status = target
	return nil
}

// CreateBookingInput represents input for creating a booking
type CreateBookingInput struct {
	ServiceID   string `json:"serviceId" binding:"required"`
	BookingDate string `json:"bookingDate" binding:"required"` // "2006-01-02"
	StartTime   string `json:"startTime" binding:"required"`   // "HH:MM"
	PartySize   int    `json:"partySize,omitempty"`
}

// UpdateBookingStatusInput represents a requested booking transition
type UpdateBookingStatusInput struct {
	Status BookingStatus `json:"status" binding:"required"`
}
