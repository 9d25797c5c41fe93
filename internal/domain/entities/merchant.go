package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "marketly.backend/internal/domain/errors"
)

// MerchantType represents merchant types
type MerchantType string

const (
	MerchantTypeIndividual   MerchantType = "individual"
	MerchantTypeOrganization MerchantType = "organization"
)

// MerchantStatus represents the merchant onboarding/approval lifecycle state
type MerchantStatus string

const (
	MerchantStatusPending   MerchantStatus = "pending"
	MerchantStatusSubmitted MerchantStatus = "submitted"
	MerchantStatusApproved  MerchantStatus = "approved"
	MerchantStatusRejected  MerchantStatus = "rejected"
	MerchantStatusActive    MerchantStatus = "active"
	MerchantStatusSuspended MerchantStatus = "suspended"
)

// merchantTransitions defines the allowed merchant lifecycle transitions.
// rejected → pending is the re-submission path.
var merchantTransitions = map[MerchantStatus][]MerchantStatus{
	MerchantStatusPending:   {MerchantStatusSubmitted},
	MerchantStatusSubmitted: {MerchantStatusApproved, MerchantStatusRejected},
	MerchantStatusApproved:  {MerchantStatusActive},
	MerchantStatusRejected:  {MerchantStatusPending},
	MerchantStatusActive:    {MerchantStatusSuspended},
	MerchantStatusSuspended: {MerchantStatusActive},
}

// IsValid returns true if the status is a recognized merchant status.
func (s MerchantStatus) IsValid() bool {
	_, ok := merchantTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s MerchantStatus) CanTransitionTo(target MerchantStatus) bool {
	for _, t := range merchantTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// RequiresReason returns true if entering this status requires a non-empty reason.
func (s MerchantStatus) RequiresReason() bool {
	return s == MerchantStatusRejected || s == MerchantStatusSuspended
}

// Merchant represents a merchant entity. A branch is a merchant row with
// ParentID set; only organization merchants may own branches.
type Merchant struct {
	ID              uuid.UUID      `json:"id"`
	OwnerUserID     uuid.UUID      `json:"ownerUserId"`
	ParentID        *uuid.UUID     `json:"parentId,omitempty"`
	Type            MerchantType   `json:"type"`
	Status          MerchantStatus `json:"status"`
	Name            string         `json:"name"`
	ContactEmail    string         `json:"contactEmail"`
	Description     null.String    `json:"description,omitempty"`
	Address         null.String    `json:"address,omitempty"`
	BusinessTypeID  *uuid.UUID     `json:"businessTypeId,omitempty"`
	CanSellProducts bool           `json:"canSellProducts"`
	CanTakeBookings bool           `json:"canTakeBookings"`
	CanRentUnits    bool           `json:"canRentUnits"`
	EmailVerifiedAt null.Time      `json:"emailVerifiedAt,omitempty"`
	StatusReason    null.String    `json:"statusReason,omitempty"`
	SubmittedAt     null.Time      `json:"submittedAt,omitempty"`
	ApprovedAt      null.Time      `json:"approvedAt,omitempty"`
	RejectedAt      null.Time      `json:"rejectedAt,omitempty"`
	SuspendedAt     null.Time      `json:"suspendedAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       null.Time      `json:"-"`
}

// IsBranch returns true if the merchant is a branch of an organization.
func (m *Merchant) IsBranch() bool {
	return m.ParentID != nil
}

// ApplyStatus validates and applies a lifecycle transition, stamping the
// one timestamp column matching the target status. Reason handling
// (required on reject/suspend, wiped on re-submission) lives here so
// every caller observes the same rules.
func (m *Merchant) ApplyStatus(target MerchantStatus, reason string, at time.Time) error {
	if target.RequiresReason() && reason == "" {
		return domainerrors.ErrMissingReason
	}
	if !m.Status.CanTransitionTo(target) {
		return domainerrors.ErrInvalidTransition
	}

	switch target {
	case MerchantStatusSubmitted:
		m.SubmittedAt = null.TimeFrom(at)
	case MerchantStatusApproved:
		m.ApprovedAt = null.TimeFrom(at)
	case MerchantStatusRejected:
		m.RejectedAt = null.TimeFrom(at)
	case MerchantStatusSuspended:
		m.SuspendedAt = null.TimeFrom(at)
	case MerchantStatusPending:
		m.StatusReason = null.String{}
		m.SubmittedAt = null.Time{}
	}

	if reason != "" {
		m.StatusReason = null.StringFrom(reason)
	}
	m.Status = target
	return nil
}

// MerchantApplyInput represents input for a merchant application
type MerchantApplyInput struct {
	Type         MerchantType `json:"type" binding:"required"`
	Name         string       `json:"name" binding:"required,min=2,max=255"`
	ContactEmail string       `json:"contactEmail" binding:"required,email"`
	Description  string       `json:"description,omitempty"`
	Address      string       `json:"address,omitempty"`
}

// CreateBranchInput represents input for creating a branch under an organization
type CreateBranchInput struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
	Address      string `json:"address,omitempty"`
}

// UpdateMerchantStatusInput represents a requested lifecycle transition
type UpdateMerchantStatusInput struct {
	Status MerchantStatus `json:"status" binding:"required"`
	Reason string         `json:"reason,omitempty"`
}
