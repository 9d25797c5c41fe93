package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/repositories"
)

// PlatformFeeUsecase administers platform fee rows.
type PlatformFeeUsecase struct {
	feeRepo repositories.PlatformFeeRepository
}

// NewPlatformFeeUsecase creates a new platform fee usecase
func NewPlatformFeeUsecase(feeRepo repositories.PlatformFeeRepository) *PlatformFeeUsecase {
	return &PlatformFeeUsecase{feeRepo: feeRepo}
}

// Create registers a fee row. Activating it deactivates siblings of the
// same transaction type, preserving the single-active-row invariant.
func (u *PlatformFeeUsecase) Create(ctx context.Context, input *entities.CreatePlatformFeeInput) (*entities.PlatformFee, error) {
	if !input.TransactionType.IsValid() {
		return nil, domainerrors.ErrBadRequest
	}
	rate, err := decimal.NewFromString(input.RatePercentage)
	if err != nil || rate.Sign() < 0 || rate.GreaterThan(oneHundred) {
		return nil, domainerrors.ErrBadRequest
	}

	fee := &entities.PlatformFee{
		TransactionType: input.TransactionType,
		RatePercentage:  rate,
	}
	if err := u.feeRepo.Create(ctx, fee); err != nil {
		return nil, err
	}
	if input.IsActive {
		if err := u.feeRepo.Activate(ctx, fee.ID); err != nil {
			return nil, err
		}
		fee.IsActive = true
	}
	return fee, nil
}

// Activate makes the row the single active fee for its type.
func (u *PlatformFeeUsecase) Activate(ctx context.Context, id uuid.UUID) error {
	return u.feeRepo.Activate(ctx, id)
}

// Deactivate turns the row off; its type then charges no fee.
func (u *PlatformFeeUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	return u.feeRepo.Deactivate(ctx, id)
}

// List returns all fee rows.
func (u *PlatformFeeUsecase) List(ctx context.Context) ([]*entities.PlatformFee, error) {
	return u.feeRepo.List(ctx)
}
