package get_week_schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/slots"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// weekOrder понедельник первый, воскресенье последнее
var weekOrder = [7]int{1, 2, 3, 4, 5, 6, 0}

// UseCase недельное расписание занятий
type UseCase struct {
	slots        SlotProvider
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotProvider SlotProvider, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		slots:        slotProvider,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute возвращает семь дней недели, содержащей req.Start
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Определяем понедельник недели
	start := req.Start
	if start.IsZero() {
		start = types.DateOf(uc.timeProvider.Now().In(uc.location))
	}
	if err := start.Validate(); err != nil {
		uc.logger.Warn("GetWeekSchedule: invalid start %q: %v", req.Start, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	monday := MondayOf(start)

	// 2. Все активные слоты, без фильтра категорий
	all := uc.slots.LoadActiveSlots(ctx, slots.Filter{})
	filter := slots.Filter{ClassID: req.ClassID}

	resp := &Response{
		WeekStart: monday,
		WeekEnd:   monday.AddDays(6),
		Days:      make([]Day, 0, len(weekOrder)),
		Classes:   classOptions(all),
	}

	// 3. Раскладываем по дням
	for i, weekday := range weekOrder {
		day := Day{Date: monday.AddDays(i), Weekday: weekday, Entries: make([]Entry, 0)}
		for j := range all {
			s := all[j]
			if s.Slot.DayOfWeek != weekday || !filter.Matches(&s) {
				continue
			}
			if s.FromFallback {
				resp.FromFallback = true
			}
			day.Entries = append(day.Entries, Entry{
				Slot:            s,
				DisplayCapacity: s.Capacity(domain.DefaultDisplayCapacity),
			})
		}
		sort.SliceStable(day.Entries, func(a, b int) bool {
			return day.Entries[a].Slot.Slot.StartTime < day.Entries[b].Slot.Slot.StartTime
		})
		resp.Days = append(resp.Days, day)
	}

	uc.logger.Info("GetWeekSchedule: week %s..%s, class=%q", resp.WeekStart, resp.WeekEnd, req.ClassID)
	return resp, nil
}

// MondayOf понедельник недели, содержащей d
func MondayOf(d types.Date) types.Date {
	offset := (types.WeekdayOf(d) + 6) % 7
	return d.AddDays(-offset)
}

func classOptions(all []domain.ScheduledSlot) []ClassOption {
	seen := make(map[string]bool)
	out := make([]ClassOption, 0)
	for _, s := range all {
		if seen[s.Class.ID] {
			continue
		}
		seen[s.Class.ID] = true
		out = append(out, ClassOption{ID: s.Class.ID, Name: s.Class.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
