package usecases

import (
	"fmt"
	"time"

	domainerrors "marketly.backend/internal/domain/errors"
	"marketly.backend/internal/domain/entities"
)

// ParseClock converts an "HH:MM" string to minutes since midnight.
// The full two-digit form is required; trailing text is rejected.
func ParseClock(s string) (int, error) {
	if len(s) != len("15:04") {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesOverlap reports whether the half-open minute windows
// [aStart, aEnd) and [bStart, bEnd) share any instant.
func MinutesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DatesOverlap reports whether the half-open date intervals
// [aIn, aOut) and [bIn, bOut) share any night. Equal boundary dates
// (one's check-out is the other's check-in) do not overlap.
func DatesOverlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Nights returns the whole-day span of [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// FindScheduleWindow locates the available schedule row whose window
// contains [start, start+duration) on the booking weekday. It returns
// ErrDateUnavailable when the day has no available row at all and
// ErrOutsideScheduleHours when rows exist but none covers the slot.
func FindScheduleWindow(schedules []*entities.ServiceSchedule, startMinutes, durationMinutes int) (*entities.ServiceSchedule, error) {
	end := startMinutes + durationMinutes
	open := false
	for _, sched := range schedules {
		if !sched.IsAvailable {
			continue
		}
		open = true
		schedStart, err := ParseClock(sched.StartTime)
		if err != nil {
			return nil, err
		}
		schedEnd, err := ParseClock(sched.EndTime)
		if err != nil {
			return nil, err
		}
		if schedStart <= startMinutes && end <= schedEnd {
			return sched, nil
		}
	}
	if !open {
		return nil, domainerrors.ErrDateUnavailable
	}
	return nil, domainerrors.ErrOutsideScheduleHours
}

// SlotCapacityUsed sums the party sizes of bookings that still claim
// capacity and whose time window overlaps [start, start+duration).
func SlotCapacityUsed(existing []*entities.Booking, startMinutes, durationMinutes int) (int, error) {
	end := startMinutes + durationMinutes
	used := 0
	for _, b := range existing {
		if !b.Status.CountsTowardCapacity() {
			continue
		}
		bStart, err := ParseClock(b.StartTime)
		if err != nil {
			return 0, err
		}
		bEnd, err := ParseClock(b.EndTime)
		if err != nil {
			return 0, err
		}
		if MinutesOverlap(startMinutes, end, bStart, bEnd) {
			used += b.PartySize
		}
	}
	return used, nil
}

// CheckSlotCapacity fails with ErrSlotAtCapacity when adding partySize
// to the used total would exceed maxCapacity. A nil maxCapacity means
// unlimited and never rejects.
func CheckSlotCapacity(used, partySize int, maxCapacity *int) error {
	if maxCapacity == nil {
		return nil
	}
	if used+partySize > *maxCapacity {
		return domainerrors.ErrSlotAtCapacity
	}
	return nil
}
