package slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
)

type fakeRepo struct {
	slots []domain.ScheduledSlot
	err   error
	calls int
}

func (f *fakeRepo) ListWithClass(_ context.Context, _ bool) ([]domain.ScheduledSlot, error) {
	f.calls++
	return f.slots, f.err
}

type fakeCache struct {
	slots  []domain.ScheduledSlot
	ok     bool
	getErr error
	sets   int
}

func (f *fakeCache) Get(_ context.Context) ([]domain.ScheduledSlot, bool, error) {
	return f.slots, f.ok, f.getErr
}

func (f *fakeCache) Set(_ context.Context, slots []domain.ScheduledSlot) error {
	f.sets++
	f.slots, f.ok = slots, true
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context) error {
	f.slots, f.ok = nil, false
	return nil
}

type fakeMetrics struct {
	fallback int
	hits     int
	misses   int
}

func (f *fakeMetrics) SlotFallbackServed() { f.fallback++ }
func (f *fakeMetrics) SlotCacheLookup(hit bool) {
	if hit {
		f.hits++
	} else {
		f.misses++
	}
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func scheduled(id, className string, day int) domain.ScheduledSlot {
	return domain.ScheduledSlot{
		Slot:  domain.TimeSlot{ID: id, ClassID: className, DayOfWeek: day, StartTime: "09:00", EndTime: "10:00", Active: true},
		Class: domain.ClassOffering{ID: className, Name: className, MaxCapacity: ptr.Ptr(10), Active: true},
	}
}

func TestFallbackCatalog(t *testing.T) {
	slots, err := parseFallback(fallbackYAML)
	require.NoError(t, err)
	require.Len(t, slots, 11)

	byID := make(map[string]domain.ScheduledSlot)
	for _, s := range slots {
		assert.True(t, s.FromFallback)
		byID[s.Slot.ID] = s
	}

	assert.Equal(t, "Hot Pilates", byID["hp2"].Class.Name)
	assert.Equal(t, "17:30", byID["hp2"].Slot.StartTime.String())
	hy1, rf3 := byID["hy1"], byID["rf3"]
	assert.Equal(t, 15, hy1.Capacity(domain.DefaultClassCapacity))
	assert.Equal(t, 8, rf3.Capacity(domain.DefaultClassCapacity))
	assert.Equal(t, "David", *byID["rf3"].Slot.Instructor)
	assert.Equal(t, 5, byID["hy3"].Slot.DayOfWeek)
}

func TestParseFallback_UnknownClass(t *testing.T) {
	_, err := parseFallback([]byte("slots:\n  - {id: x, class: nope, day_of_week: 1, start: \"09:00\", end: \"10:00\"}\n"))
	assert.ErrorIs(t, err, ErrFallbackCatalog)
}

func TestService_LoadActiveSlots_CacheHit(t *testing.T) {
	repo := &fakeRepo{}
	cache := &fakeCache{ok: true, slots: []domain.ScheduledSlot{scheduled("a", "Hot Yoga", 1)}}
	metrics := &fakeMetrics{}
	svc := NewService(repo, cache, metrics, nopLogger{})

	got := svc.LoadActiveSlots(context.Background(), Filter{})

	require.Len(t, got, 1)
	assert.Equal(t, 0, repo.calls)
	assert.Equal(t, 1, metrics.hits)
}

func TestService_LoadActiveSlots_MissPopulatesCache(t *testing.T) {
	repo := &fakeRepo{slots: []domain.ScheduledSlot{scheduled("a", "Hot Yoga", 1), scheduled("b", "Barre", 2)}}
	cache := &fakeCache{}
	metrics := &fakeMetrics{}
	svc := NewService(repo, cache, metrics, nopLogger{})

	got := svc.LoadActiveSlots(context.Background(), CalendarFilter(nil))

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Slot.ID)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, cache.slots, 2)
	assert.Equal(t, 1, metrics.misses)

	svc.LoadActiveSlots(context.Background(), Filter{})
	assert.Equal(t, 1, repo.calls)
}

func TestService_LoadActiveSlots_StoreDownServesFallback(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	cache := &fakeCache{getErr: errors.New("redis down")}
	metrics := &fakeMetrics{}
	svc := NewService(repo, cache, metrics, nopLogger{})

	got := svc.LoadActiveSlots(context.Background(), Filter{})

	assert.Len(t, got, 11)
	assert.Equal(t, 1, metrics.fallback)
	assert.Equal(t, 0, cache.sets)
	for _, s := range got {
		assert.True(t, s.FromFallback)
	}
}

func TestService_LoadActiveSlots_ClassFilter(t *testing.T) {
	repo := &fakeRepo{slots: []domain.ScheduledSlot{scheduled("a", "Hot Yoga", 1), scheduled("b", "Barre", 2)}}
	svc := NewService(repo, &fakeCache{}, &fakeMetrics{}, nopLogger{})

	got := svc.LoadActiveSlots(context.Background(), Filter{ClassID: "Barre"})

	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Slot.ID)
}

func TestService_RefreshAndInvalidate(t *testing.T) {
	repo := &fakeRepo{slots: []domain.ScheduledSlot{scheduled("a", "Hot Yoga", 1)}}
	cache := &fakeCache{}
	svc := NewService(repo, cache, &fakeMetrics{}, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))
	assert.True(t, cache.ok)

	require.NoError(t, svc.Invalidate(ctx))
	assert.False(t, cache.ok)

	repo.err = errors.New("boom")
	assert.ErrorIs(t, svc.Refresh(ctx), ErrInternal)
}

func TestCalendarFilter(t *testing.T) {
	assert.Equal(t, domain.DefaultCalendarCategories, CalendarFilter(nil).Categories)
	assert.Equal(t, []string{"barre"}, CalendarFilter([]string{" barre ", ""}).Categories)
}
