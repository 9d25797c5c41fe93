package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

// BookingUsecase handles appointment booking creation and transitions
type BookingUsecase struct {
	bookingRepo  repositories.BookingRepository
	serviceRepo  repositories.ServiceRepository
	merchantRepo repositories.MerchantRepository
	feeCalc      *FeeCalculator
	uow          repositories.UnitOfWork
}

// NewBookingUsecase creates a new booking usecase
func NewBookingUsecase(
	bookingRepo repositories.BookingRepository,
	serviceRepo repositories.ServiceRepository,
	merchantRepo repositories.MerchantRepository,
	feeCalc *FeeCalculator,
	uow repositories.UnitOfWork,
) *BookingUsecase {
	return &BookingUsecase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		merchantRepo: merchantRepo,
		feeCalc:      feeCalc,
		uow:          uow,
	}
}

// Create runs the full booking-creation pipeline: capability gate,
// schedule window check, capacity check, fee calculation, persist. The
// service row lock and the insert share one transaction so two
// concurrent requests cannot both pass the capacity check.
func (u *BookingUsecase) Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateBookingInput) (*entities.Booking, error) {
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	bookingDate, err := time.Parse(dateLayout, input.BookingDate)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	startMinutes, err := ParseClock(input.StartTime)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	partySize := input.PartySize
	if partySize < 1 {
		partySize = 1
	}

	var booking *entities.Booking
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		service, err := u.serviceRepo.LockByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if !service.IsBookable {
			return domainerrors.ErrNotFound
		}

		merchant, err := u.merchantRepo.GetByID(ctx, service.MerchantID)
		if err != nil {
			return err
		}
		if !merchant.CanTakeBookings {
			return domainerrors.ErrCannotTakeBookings
		}

		schedules, err := u.serviceRepo.GetSchedule(ctx, service.ID, bookingDate.Weekday())
		if err != nil {
			return err
		}
		if _, err := FindScheduleWindow(schedules, startMinutes, service.DurationMinutes); err != nil {
			return err
		}

		existing, err := u.bookingRepo.ListActiveOnDate(ctx, service.ID, bookingDate)
		if err != nil {
			return err
		}
		used, err := SlotCapacityUsed(existing, startMinutes, service.DurationMinutes)
		if err != nil {
			return err
		}
		if err := CheckSlotCapacity(used, partySize, service.MaxCapacity); err != nil {
			return err
		}

		fees, err := u.feeCalc.Calculate(ctx, entities.TransactionTypeBooking, service.Price)
		if err != nil {
			return err
		}

		booking = &entities.Booking{
			MerchantID:   service.MerchantID,
			ServiceID:    service.ID,
			CustomerID:   customerID,
			BookingDate:  bookingDate,
			StartTime:    FormatClock(startMinutes),
			EndTime:      FormatClock(startMinutes + service.DurationMinutes),
			PartySize:    partySize,
			Status:       entities.BookingStatusPending,
			ServicePrice: service.Price,
			FeeRate:      fees.Rate,
			FeeAmount:    fees.FeeAmount,
			TotalAmount:  fees.TotalAmount,
		}
		if !service.RequiresConfirmation {
			booking.Status = entities.BookingStatusConfirmed
			booking.ConfirmedAt = null.TimeFrom(time.Now())
		}
		return u.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateStatus applies a booking transition under a row lock.
func (u *BookingUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateBookingStatusInput) (*entities.Booking, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidTransition
	}

	var booking *entities.Booking
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		b, err := u.bookingRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := b.ApplyStatus(input.Status, time.Now()); err != nil {
			return err
		}
		if err := u.bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Get returns a booking by id.
func (u *BookingUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Booking, error) {
	return u.bookingRepo.GetByID(ctx, id)
}

// List returns bookings filtered by merchant and status.
func (u *BookingUsecase) List(ctx context.Context, merchantID *uuid.UUID, status *entities.BookingStatus, limit, offset int) ([]*entities.Booking, int64, error) {
	return u.bookingRepo.List(ctx, merchantID, status, limit, offset)
}
