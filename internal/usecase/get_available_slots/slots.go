package get_available_slots

import (
	"sort"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// slotsForWeekday слоты дня недели, отсортированные по времени начала.
// "HH:MM" с ведущим нулём сортируется лексикографически.
func slotsForWeekday(all []domain.ScheduledSlot, weekday int) []domain.ScheduledSlot {
	out := make([]domain.ScheduledSlot, 0)
	for _, s := range all {
		if s.Slot.DayOfWeek == weekday {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Slot.StartTime < out[j].Slot.StartTime
	})
	return out
}

// spotsRemaining max(0, capacity - taken)
func spotsRemaining(capacity, taken int) int {
	if taken >= capacity {
		return 0
	}
	return capacity - taken
}
