package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
)

func TestRosterXLSX(t *testing.T) {
	roster := &models.RosterResponse{
		Date:        "2026-03-02",
		DisplayDate: "Monday, 2 March 2026",
		Slots: []models.RosterSlot{
			{
				SlotID:      "slot-1",
				ClassName:   "Hot Pilates",
				DisplayTime: "7:00 AM – 8:00 AM",
				Instructor:  ptr.Ptr("Amani"),
				Capacity:    12,
				Bookings: []models.BookingResponse{
					{
						ClassName:     "Hot Pilates",
						CustomerName:  "Wanjiru Kamau",
						CustomerEmail: "wanjiru@example.com",
						CustomerPhone: "254712345678",
						PackageLabel:  "Single class",
						PriceDisplay:  "KES 2,500",
						PaymentLabel:  "Paid",
						Notes:         ptr.Ptr("knee injury"),
					},
				},
			},
			{SlotID: "slot-2", ClassName: "Reformer", DisplayTime: "9:00 AM – 10:00 AM", Capacity: 6},
		},
		Unassigned: []models.BookingResponse{
			{ClassName: "Hot Yoga", DisplayTime: "6:00 PM", CustomerName: "Otieno"},
		},
	}

	data, err := RosterXLSX(roster)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(rosterSheet)
	require.NoError(t, err)

	assert.Equal(t, "Roster: Monday, 2 March 2026", rows[0][0])
	assert.Equal(t, rosterColumns, rows[1])
	assert.Equal(t, "7:00 AM – 8:00 AM  Hot Pilates  (1/12)", rows[2][0])
	assert.Equal(t, "Wanjiru Kamau", rows[3][3])
	assert.Equal(t, "Amani", rows[3][2])
	assert.Equal(t, "KES 2,500", rows[3][7])
	assert.Equal(t, "knee injury", rows[3][10])
	assert.Equal(t, "9:00 AM – 10:00 AM  Reformer  (0/6)", rows[4][0])
	assert.Equal(t, "Other bookings", rows[5][0])
	assert.Equal(t, "Otieno", rows[6][3])
}
