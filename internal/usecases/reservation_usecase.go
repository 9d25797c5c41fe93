package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/repositories"
)

// ReservationUsecase handles unit reservation creation and transitions
type ReservationUsecase struct {
	reservationRepo repositories.ReservationRepository
	serviceRepo     repositories.ServiceRepository
	merchantRepo    repositories.MerchantRepository
	feeCalc         *FeeCalculator
	uow             repositories.UnitOfWork
}

// NewReservationUsecase creates a new reservation usecase
func NewReservationUsecase(
	reservationRepo repositories.ReservationRepository,
	serviceRepo repositories.ServiceRepository,
	merchantRepo repositories.MerchantRepository,
	feeCalc *FeeCalculator,
	uow repositories.UnitOfWork,
) *ReservationUsecase {
	return &ReservationUsecase{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		merchantRepo:    merchantRepo,
		feeCalc:         feeCalc,
		uow:             uow,
	}
}

// Create runs the reservation-creation pipeline: capability gate, date
// range validation, overlap check against non-cancelled reservations,
// guest-count capacity check, fee calculation, persist. All checks and
// the insert share one transaction behind the service row lock.
func (u *ReservationUsecase) Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateReservationInput) (*entities.Reservation, error) {
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	checkIn, err := time.Parse(dateLayout, input.CheckIn)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	checkOut, err := time.Parse(dateLayout, input.CheckOut)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	if !checkOut.After(checkIn) {
		return nil, domainerrors.ErrInvalidDateRange
	}
	guestCount := input.GuestCount
	if guestCount < 1 {
		guestCount = 1
	}

	var reservation *entities.Reservation
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		service, err := u.serviceRepo.LockByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if !service.IsReservable {
			return domainerrors.ErrNotFound
		}

		merchant, err := u.merchantRepo.GetByID(ctx, service.MerchantID)
		if err != nil {
			return err
		}
		if !merchant.CanRentUnits {
			return domainerrors.ErrCannotRentUnits
		}

		if service.MaxCapacity != nil && guestCount > *service.MaxCapacity {
			return domainerrors.ErrCapacityExceeded
		}

		conflicts, err := u.reservationRepo.ListOverlapping(ctx, service.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		for _, c := range conflicts {
			if c.Status.BlocksDates() && DatesOverlap(checkIn, checkOut, c.CheckIn, c.CheckOut) {
				return domainerrors.ErrSlotUnavailable
			}
		}

		nights := Nights(checkIn, checkOut)
		rate := service.NightlyRate()
		var subtotal decimal.Decimal
		if service.PricePerNight != nil {
			subtotal = rate.Mul(decimal.NewFromInt(int64(nights)))
		} else {
			subtotal = service.Price
		}

		fees, err := u.feeCalc.Calculate(ctx, entities.TransactionTypeReservation, subtotal)
		if err != nil {
			return err
		}

		reservation = &entities.Reservation{
			MerchantID:    service.MerchantID,
			ServiceID:     service.ID,
			CustomerID:    customerID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Nights:        nights,
			GuestCount:    guestCount,
			PricePerNight: rate,
			TotalPrice:    subtotal,
			FeeRate:       fees.Rate,
			FeeAmount:     fees.FeeAmount,
			TotalAmount:   fees.TotalAmount,
			Status:        entities.ReservationStatusPending,
		}
		return u.reservationRepo.Create(ctx, reservation)
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// UpdateStatus applies a reservation transition under a row lock.
func (u *ReservationUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateReservationStatusInput) (*entities.Reservation, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidTransition
	}

	var reservation *entities.Reservation
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		r, err := u.reservationRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := r.ApplyStatus(input.Status, time.Now()); err != nil {
			return err
		}
		if err := u.reservationRepo.Update(ctx, r); err != nil {
			return err
		}
		reservation = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// Get returns a reservation by id.
func (u *ReservationUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	return u.reservationRepo.GetByID(ctx, id)
}

// List returns reservations filtered by merchant and status.
func (u *ReservationUsecase) List(ctx context.Context, merchantID *uuid.UUID, status *entities.ReservationStatus, limit, offset int) ([]*entities.Reservation, int64, error) {
	return u.reservationRepo.List(ctx, merchantID, status, limit, offset)
}
