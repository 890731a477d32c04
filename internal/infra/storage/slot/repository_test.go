package slot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

func TestRepository_CreateAndGetByID(t *testing.T) {
	ctx := context.Background()
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db, storagetest.Builder())
	classID := storagetest.SeedClass(t, db, "Reformer Pilates", 8)

	created, err := repo.Create(ctx, &domain.TimeSlot{
		ClassID:    classID,
		DayOfWeek:  2,
		StartTime:  types.TimeString("07:00"),
		EndTime:    types.TimeString("08:00"),
		Instructor: ptr.Ptr("Anna"),
		Active:     true,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Slot.DayOfWeek)
	assert.Equal(t, types.TimeString("07:00"), got.Slot.StartTime)
	assert.Equal(t, "Anna", *got.Slot.Instructor)
	assert.Equal(t, "Reformer Pilates", got.Class.Name)
	assert.Equal(t, 8, got.Capacity(domain.DefaultClassCapacity))
	assert.False(t, got.FromFallback)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(storagetest.NewSQLite(t), storagetest.Builder())

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_MalformedIDSkipsQuery(t *testing.T) {
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db, storagetest.Builder())
	require.NoError(t, db.Close())

	_, err := repo.GetByID(context.Background(), "hp1")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	err = repo.Update(context.Background(), &domain.TimeSlot{ID: "hp1", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_ListWithClass_OrderAndActiveFilter(t *testing.T) {
	ctx := context.Background()
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db, storagetest.Builder())
	classID := storagetest.SeedClass(t, db, "Hot Yoga", 15)

	late := storagetest.SeedSlot(t, db, classID, 1, "18:00", "19:00")
	early := storagetest.SeedSlot(t, db, classID, 1, "06:30", "07:30")
	sunday := storagetest.SeedSlot(t, db, classID, 0, "10:00", "11:00")

	hidden, err := repo.GetByID(ctx, late)
	require.NoError(t, err)
	hidden.Slot.Active = false
	require.NoError(t, repo.Update(ctx, &hidden.Slot))

	all, err := repo.ListWithClass(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, sunday, all[0].Slot.ID)
	assert.Equal(t, early, all[1].Slot.ID)
	assert.Equal(t, late, all[2].Slot.ID)

	active, err := repo.ListWithClass(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, s := range active {
		assert.NotEqual(t, late, s.Slot.ID)
	}
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo := NewRepository(storagetest.NewSQLite(t), storagetest.Builder())

	err := repo.Update(context.Background(), &domain.TimeSlot{
		ID:        "missing",
		ClassID:   "x",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
