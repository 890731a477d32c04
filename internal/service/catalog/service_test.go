package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/class"
	slotRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/slot"
	"github.com/m04kA/StudioBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
)

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(context.Context) error {
	f.calls++
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(t *testing.T) (*Service, *fakeInvalidator) {
	db := storagetest.NewSQLite(t)
	qb := storagetest.Builder()
	cache := &fakeInvalidator{}
	return NewService(classRepo.NewRepository(db, qb), slotRepo.NewRepository(db, qb), cache, nopLogger{}), cache
}

func TestCreateClass(t *testing.T) {
	ctx := context.Background()
	s, cache := newService(t)

	created, err := s.CreateClass(ctx, &models.ClassRequest{
		Name:        "  Hot Pilates ",
		Description: ptr.Ptr("   "),
		MaxCapacity: ptr.Ptr(12),
		Prices:      map[string]float64{"single": 1500, "monthly": 12000, "intro": 0},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hot Pilates", created.Name)
	assert.Nil(t, created.Description)
	assert.True(t, created.Active)
	assert.Equal(t, map[string]float64{"single": 1500, "monthly": 12000}, created.Prices)
	assert.Equal(t, 1, cache.calls)

	_, err = s.CreateClass(ctx, &models.ClassRequest{Name: "Hot Pilates"})
	assert.ErrorIs(t, err, ErrClassAlreadyExists)
}

func TestCreateClass_Validation(t *testing.T) {
	s, cache := newService(t)

	tests := []struct {
		name string
		req  models.ClassRequest
	}{
		{name: "empty name", req: models.ClassRequest{Name: "  "}},
		{name: "zero capacity", req: models.ClassRequest{Name: "Yoga", MaxCapacity: ptr.Ptr(0)}},
		{name: "unknown tier", req: models.ClassRequest{Name: "Yoga", Prices: map[string]float64{"vip": 100}}},
		{name: "negative price", req: models.ClassRequest{Name: "Yoga", Prices: map[string]float64{"single": -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := s.CreateClass(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Zero(t, cache.calls)
}

func TestUpdateClass_KeepsPricesWhenOmitted(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	created, err := s.CreateClass(ctx, &models.ClassRequest{Name: "Hot Yoga", Prices: map[string]float64{"single": 1800}})
	require.NoError(t, err)
	_, err = s.CreateClass(ctx, &models.ClassRequest{Name: "Reformer Pilates"})
	require.NoError(t, err)

	updated, err := s.UpdateClass(ctx, created.ID, &models.ClassRequest{Name: "Hot Yoga Flow", Active: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Hot Yoga Flow", updated.Name)
	assert.False(t, updated.Active)
	assert.Equal(t, 1800.0, updated.Prices["single"])

	_, err = s.UpdateClass(ctx, created.ID, &models.ClassRequest{Name: "Reformer Pilates"})
	assert.ErrorIs(t, err, ErrClassAlreadyExists)

	_, err = s.UpdateClass(ctx, "missing", &models.ClassRequest{Name: "Anything"})
	assert.ErrorIs(t, err, ErrClassNotFound)

	active, err := s.ListClasses(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Reformer Pilates", active[0].Name)
}

func TestSlots_CreateUpdateList(t *testing.T) {
	ctx := context.Background()
	s, cache := newService(t)

	class, err := s.CreateClass(ctx, &models.ClassRequest{Name: "Hot Pilates"})
	require.NoError(t, err)

	slot, err := s.CreateSlot(ctx, &models.SlotRequest{
		ClassID:    class.ID,
		DayOfWeek:  ptr.Ptr(1),
		StartTime:  "17:30",
		EndTime:    "18:30",
		Instructor: ptr.Ptr(" Amina "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hot Pilates", slot.ClassName)
	assert.Equal(t, "Monday", slot.DayName)
	assert.Equal(t, "5:30 PM – 6:30 PM", slot.DisplayTime)
	require.NotNil(t, slot.Instructor)
	assert.Equal(t, "Amina", *slot.Instructor)
	assert.True(t, slot.Active)

	updated, err := s.UpdateSlot(ctx, slot.ID, &models.SlotRequest{
		ClassID:   class.ID,
		DayOfWeek: ptr.Ptr(0),
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.DayOfWeek)
	assert.Nil(t, updated.Instructor)
	assert.True(t, updated.Active)

	all, err := s.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "09:00", all[0].StartTime)

	assert.Equal(t, 3, cache.calls)
}

func TestSlots_Validation(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	class, err := s.CreateClass(ctx, &models.ClassRequest{Name: "Hot Pilates"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     models.SlotRequest
		wantErr error
	}{
		{name: "missing weekday", req: models.SlotRequest{ClassID: class.ID, StartTime: "09:00", EndTime: "10:00"}, wantErr: ErrInvalidInput},
		{name: "weekday out of range", req: models.SlotRequest{ClassID: class.ID, DayOfWeek: ptr.Ptr(7), StartTime: "09:00", EndTime: "10:00"}, wantErr: ErrInvalidInput},
		{name: "end before start", req: models.SlotRequest{ClassID: class.ID, DayOfWeek: ptr.Ptr(1), StartTime: "10:00", EndTime: "09:00"}, wantErr: ErrInvalidInput},
		{name: "bad time", req: models.SlotRequest{ClassID: class.ID, DayOfWeek: ptr.Ptr(1), StartTime: "9am", EndTime: "10:00"}, wantErr: ErrInvalidInput},
		{name: "unknown class", req: models.SlotRequest{ClassID: "missing", DayOfWeek: ptr.Ptr(1), StartTime: "09:00", EndTime: "10:00"}, wantErr: ErrClassNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := s.CreateSlot(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = s.UpdateSlot(ctx, "missing", &models.SlotRequest{ClassID: class.ID, DayOfWeek: ptr.Ptr(1), StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCreateClass_CacheErrorIgnored(t *testing.T) {
	s, cache := newService(t)
	cache.err = errors.New("redis down")

	_, err := s.CreateClass(context.Background(), &models.ClassRequest{Name: "Hot Yoga"})
	assert.NoError(t, err)
}
