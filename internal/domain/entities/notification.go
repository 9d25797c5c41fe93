package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationEvent identifies why a notification was emitted
type NotificationEvent string

const (
	NotificationMerchantStatusChanged NotificationEvent = "merchant.status_changed"
	NotificationMerchantSubmitted     NotificationEvent = "merchant.submitted"
)

// Notification is the payload handed to the async delivery queue.
// Delivery itself (email, push) is an external consumer's concern.
type Notification struct {
	ID         uuid.UUID         `json:"id"`
	Event      NotificationEvent `json:"event"`
	MerchantID uuid.UUID         `json:"merchantId"`
	UserID     *uuid.UUID        `json:"userId,omitempty"` // nil means broadcast to admin role
	FromStatus *MerchantStatus   `json:"fromStatus,omitempty"`
	ToStatus   MerchantStatus    `json:"toStatus"`
	Reason     string            `json:"reason,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
