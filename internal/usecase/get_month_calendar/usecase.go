package get_month_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/StudioBookingService/internal/service/slots"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// UseCase календарь записи на месяц
type UseCase struct {
	slots        SlotProvider
	categories   []string
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotProvider SlotProvider, categories []string, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		slots:        slotProvider,
		categories:   categories,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute отмечает дни месяца, в которые есть занятия, и прошедшие дни
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now().In(uc.location)
	today := types.DateOf(now)

	// 1. Месяц
	first := time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, time.UTC)
	if req.Month != "" {
		parsed, err := time.Parse(MonthLayout, req.Month)
		if err != nil {
			uc.logger.Warn("GetMonthCalendar: invalid month %q: %v", req.Month, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidMonth, err)
		}
		first = parsed.Add(12 * time.Hour)
	}

	// 2. Дни недели, в которые есть занятия календаря
	weekdays := make(map[int]bool)
	resp := &Response{
		Month:         first.Format(MonthLayout),
		Label:         first.Format("January 2006"),
		LeadingBlanks: int(first.Weekday()),
	}
	for _, s := range uc.slots.LoadActiveSlots(ctx, slots.CalendarFilter(uc.categories)) {
		weekdays[s.Slot.DayOfWeek] = true
		if s.FromFallback {
			resp.FromFallback = true
		}
	}

	// 3. Клетки месяца
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := types.DateOf(d)
		resp.Days = append(resp.Days, Day{
			Date:       date,
			Day:        d.Day(),
			HasClasses: weekdays[int(d.Weekday())],
			IsPast:     date.Before(today),
		})
	}

	uc.logger.Info("GetMonthCalendar: month=%s, %d weekdays with classes", resp.Month, len(weekdays))
	return resp, nil
}
