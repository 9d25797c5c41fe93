package usecases_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/usecases"
)

func TestFeeCalculator_Calculate(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		subtotal string
		wantFee  string
		wantTot  string
	}{
		{"five percent of 1000", "5", "1000", "50", "1050"},
		{"five percent of 6000", "5", "6000", "300", "6300"},
		{"rounds half up", "2.5", "100.1", "2.5", "102.6"},
		{"fractional subtotal", "5", "825", "41.25", "866.25"},
		{"zero rate", "0", "1000", "0", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feeRepo := new(MockPlatformFeeRepository)
			feeRepo.On("GetActive", mock.Anything, entities.TransactionTypeBooking).Return(&entities.PlatformFee{
				TransactionType: entities.TransactionTypeBooking,
				RatePercentage:  decimal.RequireFromString(tt.rate),
				IsActive:        true,
			}, nil).Once()

			calc := usecases.NewFeeCalculator(feeRepo)
			got, err := calc.Calculate(context.Background(), entities.TransactionTypeBooking, decimal.RequireFromString(tt.subtotal))
			assert.NoError(t, err)
			assert.True(t, got.FeeAmount.Equal(decimal.RequireFromString(tt.wantFee)),
				"fee = %s, want %s", got.FeeAmount, tt.wantFee)
			assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString(tt.wantTot)),
				"total = %s, want %s", got.TotalAmount, tt.wantTot)
		})
	}
}

func TestFeeCalculator_NoActiveRowMeansZeroFee(t *testing.T) {
	feeRepo := new(MockPlatformFeeRepository)
	feeRepo.On("GetActive", mock.Anything, entities.TransactionTypeReservation).
		Return(nil, domainerrors.ErrNotFound).Once()

	calc := usecases.NewFeeCalculator(feeRepo)
	got, err := calc.Calculate(context.Background(), entities.TransactionTypeReservation, decimal.NewFromInt(500))
	assert.NoError(t, err)
	assert.True(t, got.Rate.IsZero())
	assert.True(t, got.FeeAmount.IsZero())
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(500)))
}
