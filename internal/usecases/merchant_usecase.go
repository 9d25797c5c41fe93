package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"marketly.backend/internal/domain/entities"
	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/repositories"
	"marketly.backend/pkg/logger"
)

// MerchantUsecase handles the merchant onboarding/approval lifecycle
type MerchantUsecase struct {
	merchantRepo repositories.MerchantRepository
	logRepo      repositories.MerchantStatusLogRepository
	userRepo     repositories.UserRepository
	outboxRepo   repositories.NotificationOutboxRepository
	uow          repositories.UnitOfWork
	notifier     repositories.Notifier
}

// NewMerchantUsecase creates a new merchant usecase
func NewMerchantUsecase(
	merchantRepo repositories.MerchantRepository,
	logRepo repositories.MerchantStatusLogRepository,
	userRepo repositories.UserRepository,
	outboxRepo repositories.NotificationOutboxRepository,
	uow repositories.UnitOfWork,
	notifier repositories.Notifier,
) *MerchantUsecase {
	return &MerchantUsecase{
		merchantRepo: merchantRepo,
		logRepo:      logRepo,
		userRepo:     userRepo,
		outboxRepo:   outboxRepo,
		uow:          uow,
		notifier:     notifier,
	}
}

// Apply registers a merchant application in pending state and writes
// the creation log entry (from_status null).
func (u *MerchantUsecase) Apply(ctx context.Context, userID uuid.UUID, input *entities.MerchantApplyInput) (*entities.Merchant, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := u.merchantRepo.GetByOwnerUserID(ctx, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrAlreadyExists
	}

	if input.Type != entities.MerchantTypeIndividual && input.Type != entities.MerchantTypeOrganization {
		return nil, domainerrors.ErrBadRequest
	}

	merchant := &entities.Merchant{
		OwnerUserID:  user.ID,
		Type:         input.Type,
		Status:       entities.MerchantStatusPending,
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
	}
	if input.Description != "" {
		merchant.Description = null.StringFrom(input.Description)
	}
	if input.Address != "" {
		merchant.Address = null.StringFrom(input.Address)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.merchantRepo.Create(ctx, merchant); err != nil {
			return err
		}
		return u.logRepo.Append(ctx, &entities.MerchantStatusLog{
			MerchantID: merchant.ID,
			FromStatus: nil,
			ToStatus:   entities.MerchantStatusPending,
			ChangedBy:  &user.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

// UpdateStatus applies a lifecycle transition under a row lock, appends
// the audit log entry and the notification outbox rows in the same
// transaction, and enqueues the notifications after commit.
func (u *MerchantUsecase) UpdateStatus(ctx context.Context, merchantID uuid.UUID, input *entities.UpdateMerchantStatusInput, changedBy *uuid.UUID) (*entities.Merchant, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidTransition
	}

	var merchant *entities.Merchant
	var pending []*entities.Notification

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		m, err := u.merchantRepo.GetByIDForUpdate(ctx, merchantID)
		if err != nil {
			return err
		}
		from := m.Status
		if err := m.ApplyStatus(input.Status, input.Reason, time.Now()); err != nil {
			return err
		}
		if err := u.merchantRepo.Update(ctx, m); err != nil {
			return err
		}

		entry := &entities.MerchantStatusLog{
			MerchantID: m.ID,
			FromStatus: &from,
			ToStatus:   m.Status,
			ChangedBy:  changedBy,
		}
		if input.Reason != "" {
			entry.Reason = null.StringFrom(input.Reason)
		}
		if err := u.logRepo.Append(ctx, entry); err != nil {
			return err
		}

		pending, err = u.buildStatusNotifications(ctx, m, from, input.Reason)
		if err != nil {
			return err
		}
		for _, n := range pending {
			if err := u.outboxRepo.Save(ctx, n); err != nil {
				return err
			}
		}
		merchant = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.dispatch(ctx, pending)
	return merchant, nil
}

// CreateBranch creates a pre-vetted branch under an organization. The
// branch skips the submit/approve flow: it is born active with
// approved_at set and a single fixed-reason log entry.
func (u *MerchantUsecase) CreateBranch(ctx context.Context, parentID uuid.UUID, input *entities.CreateBranchInput, changedBy *uuid.UUID) (*entities.Merchant, error) {
	parent, err := u.merchantRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.Type != entities.MerchantTypeOrganization {
		return nil, domainerrors.ErrForbidden
	}
	if parent.IsBranch() {
		return nil, domainerrors.ErrForbidden
	}

	now := time.Now()
	branch := &entities.Merchant{
		OwnerUserID:     parent.OwnerUserID,
		ParentID:        &parent.ID,
		Type:            entities.MerchantTypeIndividual,
		Status:          entities.MerchantStatusActive,
		Name:            input.Name,
		ContactEmail:    input.ContactEmail,
		BusinessTypeID:  parent.BusinessTypeID,
		CanSellProducts: parent.CanSellProducts,
		CanTakeBookings: parent.CanTakeBookings,
		CanRentUnits:    parent.CanRentUnits,
		ApprovedAt:      null.TimeFrom(now),
	}
	if input.Address != "" {
		branch.Address = null.StringFrom(input.Address)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.merchantRepo.Create(ctx, branch); err != nil {
			return err
		}
		return u.logRepo.Append(ctx, &entities.MerchantStatusLog{
			MerchantID: branch.ID,
			FromStatus: nil,
			ToStatus:   entities.MerchantStatusActive,
			Reason:     null.StringFrom(entities.BranchCreatedReason),
			ChangedBy:  changedBy,
		})
	})
	if err != nil {
		return nil, err
	}
	return branch, nil
}

// Get returns a merchant by id.
func (u *MerchantUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	return u.merchantRepo.GetByID(ctx, id)
}

// List returns merchants filtered by status.
func (u *MerchantUsecase) List(ctx context.Context, status *entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int64, error) {
	return u.merchantRepo.List(ctx, status, limit, offset)
}

// GetStatusLogs returns the merchant's audit trail, oldest first.
func (u *MerchantUsecase) GetStatusLogs(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantStatusLog, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.logRepo.ListByMerchant(ctx, merchantID)
}

// Delete soft deletes a merchant. The row is recoverable; lifecycle
// state is untouched.
func (u *MerchantUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.merchantRepo.SoftDelete(ctx, id)
}

// buildStatusNotifications assembles the owner notification for every
// change and the admin broadcast on submission.
func (u *MerchantUsecase) buildStatusNotifications(ctx context.Context, m *entities.Merchant, from entities.MerchantStatus, reason string) ([]*entities.Notification, error) {
	fromCopy := from
	ns := []*entities.Notification{{
		Event:      entities.NotificationMerchantStatusChanged,
		MerchantID: m.ID,
		UserID:     &m.OwnerUserID,
		FromStatus: &fromCopy,
		ToStatus:   m.Status,
		Reason:     reason,
		CreatedAt:  time.Now(),
	}}

	if m.Status != entities.MerchantStatusSubmitted {
		return ns, nil
	}
	adminIDs, err := u.userRepo.ListAdminIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, adminID := range adminIDs {
		adminID := adminID
		ns = append(ns, &entities.Notification{
			Event:      entities.NotificationMerchantSubmitted,
			MerchantID: m.ID,
			UserID:     &adminID,
			FromStatus: &fromCopy,
			ToStatus:   m.Status,
			CreatedAt:  time.Now(),
		})
	}
	return ns, nil
}

// dispatch pushes committed outbox payloads onto the queue, marking
// each one dispatched on success. A failed push stays pending in the
// outbox for DispatchPendingNotifications to retry; the state change
// itself has already committed, so errors are logged, never returned.
func (u *MerchantUsecase) dispatch(ctx context.Context, ns []*entities.Notification) {
	for _, n := range ns {
		if err := u.notifier.Notify(ctx, n); err != nil {
			logger.Error(ctx, "failed to enqueue notification, left pending in outbox",
				zap.String("merchant_id", n.MerchantID.String()),
				zap.String("notification_id", n.ID.String()),
				zap.Error(err))
			continue
		}
		if err := u.outboxRepo.MarkDispatched(ctx, n.ID); err != nil {
			logger.Error(ctx, "failed to mark notification dispatched",
				zap.String("notification_id", n.ID.String()), zap.Error(err))
		}
	}
}

// DispatchPendingNotifications re-enqueues outbox payloads that never
// reached the queue, typically after a crash or queue outage. Called
// at startup; safe to call at any time.
func (u *MerchantUsecase) DispatchPendingNotifications(ctx context.Context) error {
	pending, err := u.outboxRepo.ListPending(ctx, 0)
	if err != nil {
		return err
	}
	u.dispatch(ctx, pending)
	return nil
}
