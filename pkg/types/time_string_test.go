package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDisplayTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"00:15", "12:15 AM"},
		{"09:00", "9:00 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "1:05 PM"},
		{"23:30", "11:30 PM"},
		{"17", "5:00 PM"},
		{"06:30:00", "6:30 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDisplayTime(tt.in))
		})
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromString("18:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:00"), ts)

	for _, bad := range []string{"9:30", "25:00", "aa:bb", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, bad)
	}
}

func TestTimeString_AddMinutesAndCompare(t *testing.T) {
	start := TimeString("09:45")

	end, err := start.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), end)
	assert.True(t, start.IsBefore(end))
	assert.True(t, end.IsAfter(start))

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("07:00:00"))
	assert.Equal(t, TimeString("07:00"), ts)

	require.NoError(t, ts.Scan([]byte("16:30")))
	assert.Equal(t, TimeString("16:30"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
