package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/slots"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// UseCase use case для расчёта свободных мест на дату
type UseCase struct {
	slots        SlotProvider
	bookings     BookingCounter
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotProvider SlotProvider,
	bookings BookingCounter,
	location *time.Location,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.DefaultCapacity <= 0 {
		opts.DefaultCapacity = domain.DefaultClassCapacity
	}
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		slots:        slotProvider,
		bookings:     bookings,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
		opts:         opts,
	}
}

// Execute выполняет use case получения доступных слотов.
// Ошибки подсчёта не возвращаются: слот считается свободным.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, class=%q", req.Date, req.ClassID)

	// 1. Валидация даты
	if err := req.Date.Validate(); err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	today := types.DateOf(uc.timeProvider.Now().In(uc.location))
	if req.Date.Before(today) {
		uc.logger.Warn("GetAvailableSlots: date %s is before today %s", req.Date, today)
		return nil, ErrDateInPast
	}

	// 2. Слоты нужного представления
	filter := slots.CalendarFilter(uc.opts.CalendarCategories)
	if req.ClassID != "" {
		filter = slots.Filter{ClassID: req.ClassID}
	}
	weekday := types.WeekdayOf(req.Date)
	daySlots := slotsForWeekday(uc.slots.LoadActiveSlots(ctx, filter), weekday)

	// 3. Свободные места по каждому слоту
	resp := &Response{
		Date:    req.Date,
		Weekday: weekday,
		Slots:   make([]domain.SlotAvailability, 0, len(daySlots)),
	}
	for _, s := range daySlots {
		capacity := s.Capacity(uc.opts.DefaultCapacity)
		spots := capacity

		if s.FromFallback {
			resp.FromFallback = true
		} else {
			taken, err := uc.bookings.CountActive(ctx, s.Slot.ID, req.Date)
			if err != nil {
				uc.logger.Warn("GetAvailableSlots: count failed for slot id=%s, assuming open: %v", s.Slot.ID, err)
			} else {
				spots = spotsRemaining(capacity, taken)
			}
		}

		resp.Slots = append(resp.Slots, domain.SlotAvailability{
			Slot:           s,
			Date:           req.Date,
			Capacity:       capacity,
			SpotsRemaining: spots,
		})
	}

	uc.logger.Info("GetAvailableSlots: date=%s weekday=%d, %d slots", req.Date, weekday, len(resp.Slots))
	return resp, nil
}
