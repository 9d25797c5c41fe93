package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BranchCreatedReason is the fixed log reason for branches, which are
// created already active and skip the submit/approve flow.
const BranchCreatedReason = "branch created under parent organization"

// MerchantStatusLog is an immutable audit row appended on every
// merchant status mutation. FromStatus is null only for the creation
// entry; ChangedBy is null for system actions.
type MerchantStatusLog struct {
	ID         uuid.UUID       `json:"id"`
	MerchantID uuid.UUID       `json:"merchantId"`
	FromStatus *MerchantStatus `json:"fromStatus,omitempty"`
	ToStatus   MerchantStatus  `json:"toStatus"`
	Reason     null.String     `json:"reason,omitempty"`
	ChangedBy  *uuid.UUID      `json:"changedBy,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
