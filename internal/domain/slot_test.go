package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSlot_Validate(t *testing.T) {
	valid := TimeSlot{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&TimeSlot{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}).Validate())
	assert.Error(t, (&TimeSlot{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"}).Validate())
	assert.Error(t, (&TimeSlot{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"}).Validate())
}

func TestSlotAvailability_Label(t *testing.T) {
	tests := []struct {
		spots    int
		label    string
		bookable bool
	}{
		{0, "Full", false},
		{1, "1 spot remaining", true},
		{7, "7 spots remaining", true},
	}

	for _, tt := range tests {
		a := SlotAvailability{SpotsRemaining: tt.spots}
		assert.Equal(t, tt.label, a.Label())
		assert.Equal(t, tt.bookable, a.IsBookable())
	}
}
