package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType identifies which transaction a platform fee applies to
type TransactionType string

const (
	TransactionTypeBooking     TransactionType = "booking"
	TransactionTypeReservation TransactionType = "reservation"
	TransactionTypeSellProduct TransactionType = "sell_product"
)

// IsValid returns true if the transaction type is recognized.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeBooking, TransactionTypeReservation, TransactionTypeSellProduct:
		return true
	}
	return false
}

// PlatformFee is a percentage surcharge on a transaction subtotal.
// Invariant: at most one active row per transaction type; activating a
// row deactivates its siblings.
type PlatformFee struct {
	ID              uuid.UUID       `json:"id"`
	TransactionType TransactionType `json:"transactionType"`
	RatePercentage  decimal.Decimal `json:"ratePercentage"` // 0-100
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// FeeBreakdown is the result of a platform fee calculation, stored
// immutably on the transaction row at creation time.
type FeeBreakdown struct {
	Rate        decimal.Decimal `json:"rate"`
	FeeAmount   decimal.Decimal `json:"feeAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// CreatePlatformFeeInput represents input for creating a fee row
type CreatePlatformFeeInput struct {
	TransactionType TransactionType `json:"transactionType" binding:"required"`
	RatePercentage  string          `json:"ratePercentage" binding:"required"`
	IsActive        bool            `json:"isActive"`
}
