package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/repositories"
)

const orderNumberAttempts = 3

// OrderUsecase handles service order creation and transitions
type OrderUsecase struct {
	orderRepo    repositories.ServiceOrderRepository
	serviceRepo  repositories.ServiceRepository
	merchantRepo repositories.MerchantRepository
	feeCalc      *FeeCalculator
	uow          repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.ServiceOrderRepository,
	serviceRepo repositories.ServiceRepository,
	merchantRepo repositories.MerchantRepository,
	feeCalc *FeeCalculator,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:    orderRepo,
		serviceRepo:  serviceRepo,
		merchantRepo: merchantRepo,
		feeCalc:      feeCalc,
		uow:          uow,
	}
}

// OrderNumber formats the date-scoped sequential order number,
// ORD-YYYYMMDD-NNN. The sequence is global per calendar day.
func OrderNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("ORD-%s-%03d", date.Format("20060102"), seq)
}

// Create runs the order-creation pipeline: capability gate, quantity
// validation, fee calculation, order-number assignment, persist. The
// unique index on order_number backs the count-derived sequence; on a
// duplicate the whole transaction is retried with a fresh count.
func (u *OrderUsecase) Create(ctx context.Context, customerID uuid.UUID, input *entities.CreateOrderInput) (*entities.ServiceOrder, error) {
	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		return nil, domainerrors.ErrBadRequest
	}
	quantity, err := decimal.NewFromString(input.Quantity)
	if err != nil || quantity.Sign() <= 0 {
		return nil, domainerrors.ErrBadRequest
	}

	var order *entities.ServiceOrder
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		err = u.uow.Do(ctx, func(ctx context.Context) error {
			service, err := u.serviceRepo.LockByID(ctx, serviceID)
			if err != nil {
				return err
			}
			if !service.IsSellable {
				return domainerrors.ErrNotFound
			}

			merchant, err := u.merchantRepo.GetByID(ctx, service.MerchantID)
			if err != nil {
				return err
			}
			if !merchant.CanSellProducts {
				return domainerrors.ErrCannotSellProducts
			}

			subtotal := quantity.Mul(service.Price)
			fees, err := u.feeCalc.Calculate(ctx, entities.TransactionTypeSellProduct, subtotal)
			if err != nil {
				return err
			}

			today := time.Now()
			count, err := u.orderRepo.CountOnDate(ctx, today)
			if err != nil {
				return err
			}

			order = &entities.ServiceOrder{
				MerchantID:  service.MerchantID,
				ServiceID:   service.ID,
				CustomerID:  customerID,
				OrderNumber: OrderNumber(today, count+1),
				Quantity:    quantity,
				UnitPrice:   service.Price,
				TotalPrice:  subtotal,
				FeeRate:     fees.Rate,
				FeeAmount:   fees.FeeAmount,
				TotalAmount: fees.TotalAmount,
				Status:      entities.OrderStatusPending,
			}
			if input.UnitLabel != "" {
				order.UnitLabel = null.StringFrom(input.UnitLabel)
			} else if service.UnitLabel.Valid {
				order.UnitLabel = service.UnitLabel
			}
			return u.orderRepo.Create(ctx, order)
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, err
		}
		// Lost the order-number race; recount and retry.
	}
	return nil, err
}

// UpdateStatus applies an order transition under a row lock.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, input *entities.UpdateOrderStatusInput) (*entities.ServiceOrder, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidTransition
	}

	var order *entities.ServiceOrder
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		o, err := u.orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := o.ApplyStatus(input.Status, time.Now()); err != nil {
			return err
		}
		if err := u.orderRepo.Update(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns an order by id.
func (u *OrderUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.ServiceOrder, error) {
	return u.orderRepo.GetByID(ctx, id)
}

// List returns orders filtered by merchant and status.
func (u *OrderUsecase) List(ctx context.Context, merchantID *uuid.UUID, status *entities.OrderStatus, limit, offset int) ([]*entities.ServiceOrder, int64, error) {
	return u.orderRepo.List(ctx, merchantID, status, limit, offset)
}
