package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/StudioBookingService/pkg/types"
)

// TimeSlot is a weekly recurring occurrence of a class
type TimeSlot struct {
	ID         string
	ClassID    string
	DayOfWeek  int // 0=Sunday..6=Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
	Instructor *string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks weekday range and that the slot starts before it ends
func (s *TimeSlot) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6, got %d", s.DayOfWeek)
	}
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("start_time %s must be before end_time %s", s.StartTime, s.EndTime)
	}
	return nil
}

// ScheduledSlot is a recurring slot joined with its class
type ScheduledSlot struct {
	Slot  TimeSlot
	Class ClassOffering
	// FromFallback marks slots of the built-in list, they have no bookings in the store
	FromFallback bool
}

// Capacity class capacity or def
func (s *ScheduledSlot) Capacity(def int) int {
	return s.Class.Capacity(def)
}

// SlotAvailability remaining capacity of a slot on a concrete date
type SlotAvailability struct {
	Slot           ScheduledSlot
	Date           types.Date
	Capacity       int
	SpotsRemaining int
}

// IsBookable true while there is at least one spot left
func (a *SlotAvailability) IsBookable() bool {
	return a.SpotsRemaining > 0
}

// Label "Full" or "n spot(s) remaining"
func (a *SlotAvailability) Label() string {
	switch {
	case a.SpotsRemaining <= 0:
		return "Full"
	case a.SpotsRemaining == 1:
		return "1 spot remaining"
	default:
		return fmt.Sprintf("%d spots remaining", a.SpotsRemaining)
	}
}
