package entities

import (
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded merchant verification document. File storage
// is external; only the row count feeds the onboarding checklist.
type Document struct {
	ID             uuid.UUID `json:"id"`
	MerchantID     uuid.UUID `json:"merchantId"`
	DocumentTypeID uuid.UUID `json:"documentTypeId"`
	FileURL        string    `json:"fileUrl"`
	UploadedAt     time.Time `json:"uploadedAt"`
}
