package usecases

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/repositories"
)

var oneHundred = decimal.NewFromInt(100)

// FeeCalculator derives the platform fee for a transaction subtotal.
// The result is stored immutably on the transaction row; later rate
// changes never touch existing transactions.
type FeeCalculator struct {
	feeRepo repositories.PlatformFeeRepository
}

// NewFeeCalculator creates a new fee calculator
func NewFeeCalculator(feeRepo repositories.PlatformFeeRepository) *FeeCalculator {
	return &FeeCalculator{feeRepo: feeRepo}
}

// Calculate looks up the single active fee row for the transaction type
// and returns {rate, fee, total}. No active row means rate 0.
func (c *FeeCalculator) Calculate(ctx context.Context, txType entities.TransactionType, subtotal decimal.Decimal) (entities.FeeBreakdown, error) {
	rate := decimal.Zero
	fee, err := c.feeRepo.GetActive(ctx, txType)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return entities.FeeBreakdown{}, err
	}
	if fee != nil {
		rate = fee.RatePercentage
	}

	feeAmount := subtotal.Mul(rate).Div(oneHundred).Round(2)
	return entities.FeeBreakdown{
		Rate:        rate,
		FeeAmount:   feeAmount,
		TotalAmount: subtotal.Add(feeAmount),
	}, nil
}
