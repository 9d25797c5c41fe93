package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// UnitStatus represents the availability state of a reservable unit
type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

// Service represents a merchant offering. The flags gate which
// transaction types the service participates in; MaxCapacity nil means
// unlimited.
type Service struct {
	ID                   uuid.UUID        `json:"id"`
	MerchantID           uuid.UUID        `json:"merchantId"`
	Name                 string           `json:"name"`
	IsBookable           bool             `json:"isBookable"`
	IsSellable           bool             `json:"isSellable"`
	IsReservable         bool             `json:"isReservable"`
	DurationMinutes      int              `json:"durationMinutes"`
	MaxCapacity          *int             `json:"maxCapacity,omitempty"`
	Price                decimal.Decimal  `json:"price"`
	PricePerNight        *decimal.Decimal `json:"pricePerNight,omitempty"`
	UnitLabel            null.String      `json:"unitLabel,omitempty"`
	UnitStatus           UnitStatus       `json:"unitStatus,omitempty"`
	RequiresConfirmation bool             `json:"requiresConfirmation"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
	DeletedAt            null.Time        `json:"-"`
}

// Duration returns the booking slot length.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// NightlyRate returns the per-night rate when set, else the flat price.
func (s *Service) NightlyRate() decimal.Decimal {
	if s.PricePerNight != nil {
		return *s.PricePerNight
	}
	return s.Price
}

// ServiceSchedule is a weekly availability window for a bookable
// service. DayOfWeek is 0=Sunday..6=Saturday; a day without any row is
// unavailable.
type ServiceSchedule struct {
	ID          uuid.UUID    `json:"id"`
	ServiceID   uuid.UUID    `json:"serviceId"`
	DayOfWeek   time.Weekday `json:"dayOfWeek"`
	StartTime   string       `json:"startTime"` // "HH:MM"
	EndTime     string       `json:"endTime"`   // "HH:MM"
	IsAvailable bool         `json:"isAvailable"`
}
