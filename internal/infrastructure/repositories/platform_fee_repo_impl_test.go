package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
)

func TestPlatformFeeRepository_SingleActivePerType(t *testing.T) {
	db := newTestDB(t)
	createPlatformFeeTable(t, db)
	repo := NewPlatformFeeRepository(db)
	ctx := context.Background()

	first := &entities.PlatformFee{
		TransactionType: entities.TransactionTypeBooking,
		RatePercentage:  decimal.NewFromInt(5),
	}
	second := &entities.PlatformFee{
		TransactionType: entities.TransactionTypeBooking,
		RatePercentage:  decimal.RequireFromString("7.5"),
	}
	other := &entities.PlatformFee{
		TransactionType: entities.TransactionTypeReservation,
		RatePercentage:  decimal.NewFromInt(3),
	}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, other))

	_, err := repo.GetActive(ctx, entities.TransactionTypeBooking)
	require.ErrorIs(t, err, domainerrors.ErrNotFound, "rows start inactive")

	require.NoError(t, repo.Activate(ctx, first.ID))
	active, err := repo.GetActive(ctx, entities.TransactionTypeBooking)
	require.NoError(t, err)
	require.Equal(t, first.ID, active.ID)

	// activating the sibling flips the first one off
	require.NoError(t, repo.Activate(ctx, second.ID))
	active, err = repo.GetActive(ctx, entities.TransactionTypeBooking)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)
	require.True(t, active.RatePercentage.Equal(decimal.RequireFromString("7.5")))

	// other transaction types are untouched
	require.NoError(t, repo.Activate(ctx, other.ID))
	active, err = repo.GetActive(ctx, entities.TransactionTypeBooking)
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)

	fees, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, fees, 3)
}

func TestPlatformFeeRepository_Deactivate(t *testing.T) {
	db := newTestDB(t)
	createPlatformFeeTable(t, db)
	repo := NewPlatformFeeRepository(db)
	ctx := context.Background()

	fee := &entities.PlatformFee{
		TransactionType: entities.TransactionTypeSellProduct,
		RatePercentage:  decimal.NewFromInt(5),
	}
	require.NoError(t, repo.Create(ctx, fee))
	require.NoError(t, repo.Activate(ctx, fee.ID))

	require.NoError(t, repo.Deactivate(ctx, fee.ID))
	_, err := repo.GetActive(ctx, entities.TransactionTypeSellProduct)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
