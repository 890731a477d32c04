package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/slots"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

type fakeSlots struct {
	all        []domain.ScheduledSlot
	lastFilter slots.Filter
}

func (f *fakeSlots) LoadActiveSlots(_ context.Context, filter slots.Filter) []domain.ScheduledSlot {
	f.lastFilter = filter
	out := make([]domain.ScheduledSlot, 0)
	for i := range f.all {
		if filter.Matches(&f.all[i]) {
			out = append(out, f.all[i])
		}
	}
	return out
}

type fakeCounter struct {
	counts map[string]int
	errs   map[string]error
	calls  int
}

func (f *fakeCounter) CountActive(_ context.Context, slotID string, _ types.Date) (int, error) {
	f.calls++
	if err := f.errs[slotID]; err != nil {
		return 0, err
	}
	return f.counts[slotID], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func slot(id, className string, capacity *int, day int, start string) domain.ScheduledSlot {
	return domain.ScheduledSlot{
		Slot:  domain.TimeSlot{ID: id, ClassID: className, DayOfWeek: day, StartTime: types.TimeString(start), EndTime: "23:00", Active: true},
		Class: domain.ClassOffering{ID: className, Name: className, MaxCapacity: capacity, Active: true},
	}
}

func newUseCase(provider SlotProvider, counter BookingCounter) *UseCase {
	uc := NewUseCase(provider, counter, time.UTC, nopLogger{}, Options{})
	// Воскресенье, 1 марта 2026
	uc.timeProvider = fixedTime{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_SortsAndCountsSpots(t *testing.T) {
	provider := &fakeSlots{all: []domain.ScheduledSlot{
		slot("late", "Hot Pilates", ptr.Ptr(12), 1, "17:30"),
		slot("early", "Hot Yoga", ptr.Ptr(15), 1, "06:30"),
		slot("full", "Reformer Pilates", ptr.Ptr(8), 1, "10:00"),
		slot("tuesday", "Hot Pilates", ptr.Ptr(12), 2, "09:00"),
	}}
	counter := &fakeCounter{counts: map[string]int{"late": 11, "full": 9}}
	uc := newUseCase(provider, counter)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-02"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Weekday)
	require.Len(t, resp.Slots, 3)

	assert.Equal(t, "early", resp.Slots[0].Slot.Slot.ID)
	assert.Equal(t, 15, resp.Slots[0].SpotsRemaining)
	assert.Equal(t, "15 spots remaining", resp.Slots[0].Label())

	assert.Equal(t, "full", resp.Slots[1].Slot.Slot.ID)
	assert.Equal(t, 0, resp.Slots[1].SpotsRemaining)
	assert.False(t, resp.Slots[1].IsBookable())
	assert.Equal(t, "Full", resp.Slots[1].Label())

	assert.Equal(t, "late", resp.Slots[2].Slot.Slot.ID)
	assert.Equal(t, "1 spot remaining", resp.Slots[2].Label())
	assert.True(t, resp.Slots[2].IsBookable())

	assert.Equal(t, domain.DefaultCalendarCategories, provider.lastFilter.Categories)
}

func TestExecute_DefaultCapacity(t *testing.T) {
	provider := &fakeSlots{all: []domain.ScheduledSlot{slot("a", "Hot Yoga", nil, 1, "09:00")}}
	uc := newUseCase(provider, &fakeCounter{counts: map[string]int{"a": 2}})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 12, resp.Slots[0].Capacity)
	assert.Equal(t, 10, resp.Slots[0].SpotsRemaining)
}

func TestExecute_CountFailureAssumesOpen(t *testing.T) {
	provider := &fakeSlots{all: []domain.ScheduledSlot{slot("a", "Hot Yoga", ptr.Ptr(15), 1, "09:00")}}
	counter := &fakeCounter{errs: map[string]error{"a": errors.New("timeout")}}
	uc := newUseCase(provider, counter)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Slots[0].SpotsRemaining)
}

func TestExecute_FallbackSlotsSkipCount(t *testing.T) {
	s := slot("hp1", "Hot Pilates", ptr.Ptr(12), 1, "09:00")
	s.FromFallback = true
	counter := &fakeCounter{}
	uc := newUseCase(&fakeSlots{all: []domain.ScheduledSlot{s}}, counter)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-02"})
	require.NoError(t, err)
	assert.True(t, resp.FromFallback)
	assert.Equal(t, 12, resp.Slots[0].SpotsRemaining)
	assert.Equal(t, 0, counter.calls)
}

func TestExecute_CalendarFilterAndClassFilter(t *testing.T) {
	provider := &fakeSlots{all: []domain.ScheduledSlot{
		slot("a", "Hot Yoga", nil, 1, "09:00"),
		slot("b", "Barre", nil, 1, "10:00"),
	}}
	uc := newUseCase(provider, &fakeCounter{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "a", resp.Slots[0].Slot.Slot.ID)

	resp, err = uc.Execute(context.Background(), &Request{Date: "2026-03-02", ClassID: "Barre"})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "b", resp.Slots[0].Slot.Slot.ID)
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newUseCase(&fakeSlots{}, &fakeCounter{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-01"})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 0, resp.Weekday)
}

func TestExecute_RejectsPastAndInvalidDates(t *testing.T) {
	uc := newUseCase(&fakeSlots{}, &fakeCounter{})

	_, err := uc.Execute(context.Background(), &Request{Date: "2026-02-28"})
	assert.ErrorIs(t, err, ErrDateInPast)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-13-40"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
