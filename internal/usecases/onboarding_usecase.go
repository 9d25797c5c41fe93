package usecases

import (
	"context"
	"math"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
	"marketly.backend/internal/domain/repositories"
)

// OnboardingUsecase derives the read-only setup completion report.
type OnboardingUsecase struct {
	merchantRepo repositories.MerchantRepository
	userRepo     repositories.UserRepository
}

// NewOnboardingUsecase creates a new onboarding usecase
func NewOnboardingUsecase(
	merchantRepo repositories.MerchantRepository,
	userRepo repositories.UserRepository,
) *OnboardingUsecase {
	return &OnboardingUsecase{merchantRepo: merchantRepo, userRepo: userRepo}
}

// Checklist evaluates the nine fixed items against current merchant
// state. Item order is stable.
func (u *OnboardingUsecase) Checklist(ctx context.Context, merchantID uuid.UUID) (*entities.OnboardingChecklist, error) {
	m, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	user, err := u.userRepo.GetByID(ctx, m.OwnerUserID)
	if err != nil {
		return nil, err
	}
	docCount, err := u.merchantRepo.CountDocuments(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	pmCount, err := u.merchantRepo.CountPaymentMethods(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	// Rejected still counts as submitted: the application went through
	// review, it only reopens once the merchant moves back to pending.
	submitted := m.Status != entities.MerchantStatusPending
	approved := m.Status == entities.MerchantStatusApproved || m.Status == entities.MerchantStatusActive

	items := []entities.ChecklistItem{
		{
			Key:         entities.ChecklistAccountCreated,
			Label:       "Account created",
			Description: "Your merchant account exists",
			Completed:   true,
		},
		{
			Key:         entities.ChecklistEmailVerified,
			Label:       "Email verified",
			Description: "The owner's email address is verified",
			Completed:   user.IsEmailVerified || m.EmailVerifiedAt.Valid,
		},
		{
			Key:         entities.ChecklistBusinessTypeSelected,
			Label:       "Business type selected",
			Description: "A business type is assigned",
			Completed:   m.BusinessTypeID != nil,
		},
		{
			Key:         entities.ChecklistCapabilitiesConfigured,
			Label:       "Capabilities configured",
			Description: "At least one transaction capability is enabled",
			Completed:   m.CanSellProducts || m.CanTakeBookings || m.CanRentUnits,
		},
		{
			Key:         entities.ChecklistBusinessDetailsCompleted,
			Label:       "Business details completed",
			Description: "Name, contact email, description and address are filled in",
			Completed:   m.Name != "" && m.ContactEmail != "" && m.Description.Valid && m.Description.String != "" && m.Address.Valid && m.Address.String != "",
		},
		{
			Key:         entities.ChecklistDocumentsUploaded,
			Label:       "Documents uploaded",
			Description: "At least one verification document is uploaded",
			Completed:   docCount > 0,
		},
		{
			Key:         entities.ChecklistApplicationSubmitted,
			Label:       "Application submitted",
			Description: "The application has been submitted for review",
			Completed:   submitted,
		},
		{
			Key:         entities.ChecklistAdminApproved,
			Label:       "Approved by admin",
			Description: "The application has been approved",
			Completed:   approved,
		},
		{
			Key:         entities.ChecklistPaymentMethodConfigured,
			Label:       "Payment method configured",
			Description: "At least one accepted payment method is configured",
			Completed:   pmCount > 0,
		},
	}

	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	return &entities.OnboardingChecklist{
		Items:                items,
		CompletedCount:       completed,
		TotalCount:           len(items),
		CompletionPercentage: int(math.Round(float64(completed) / float64(len(items)) * 100)),
	}, nil
}
