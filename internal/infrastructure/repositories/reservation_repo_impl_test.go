package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketly.backend/internal/domain/entities"
)

func newReservation(serviceID uuid.UUID, checkIn, checkOut time.Time, status entities.ReservationStatus) *entities.Reservation {
	return &entities.Reservation{
		MerchantID:    uuid.New(),
		ServiceID:     serviceID,
		CustomerID:    uuid.New(),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        int(checkOut.Sub(checkIn).Hours() / 24),
		GuestCount:    2,
		PricePerNight: decimal.NewFromInt(2000),
		TotalPrice:    decimal.NewFromInt(6000),
		TotalAmount:   decimal.NewFromInt(6300),
		Status:        status,
	}
}

func octDay(d int) time.Time {
	return time.Date(2026, time.October, d, 0, 0, 0, 0, time.UTC)
}

func TestReservationRepository_CreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	r := newReservation(uuid.New(), octDay(10), octDay(13), entities.ReservationStatusPending)
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Nights)
	require.True(t, got.TotalPrice.Equal(decimal.NewFromInt(6000)))

	require.NoError(t, got.ApplyStatus(entities.ReservationStatusConfirmed, time.Now()))
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, entities.ReservationStatusConfirmed, got.Status)
	require.True(t, got.ConfirmedAt.Valid)
}

func TestReservationRepository_ListOverlapping(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	serviceID := uuid.New()
	require.NoError(t, repo.Create(ctx, newReservation(serviceID, octDay(10), octDay(13), entities.ReservationStatusConfirmed)))
	require.NoError(t, repo.Create(ctx, newReservation(serviceID, octDay(13), octDay(16), entities.ReservationStatusConfirmed)))
	require.NoError(t, repo.Create(ctx, newReservation(serviceID, octDay(11), octDay(12), entities.ReservationStatusCancelled)))
	require.NoError(t, repo.Create(ctx, newReservation(uuid.New(), octDay(11), octDay(12), entities.ReservationStatusConfirmed)))

	// [12, 14) touches both confirmed stays
	overlapping, err := repo.ListOverlapping(ctx, serviceID, octDay(12), octDay(14))
	require.NoError(t, err)
	require.Len(t, overlapping, 2)

	// [13, 14) only hits the second stay: a check-out on the 13th does
	// not collide with a check-in on the 13th
	overlapping, err = repo.ListOverlapping(ctx, serviceID, octDay(13), octDay(14))
	require.NoError(t, err)
	require.Len(t, overlapping, 1)

	// [16, 20) is free
	overlapping, err = repo.ListOverlapping(ctx, serviceID, octDay(16), octDay(20))
	require.NoError(t, err)
	require.Empty(t, overlapping)
}
