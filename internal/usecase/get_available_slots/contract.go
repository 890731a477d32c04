package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/service/slots"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// SlotProvider источник активных слотов (с кэшем и встроенным каталогом)
type SlotProvider interface {
	LoadActiveSlots(ctx context.Context, filter slots.Filter) []domain.ScheduledSlot
}

// BookingCounter подсчёт занятых мест
type BookingCounter interface {
	CountActive(ctx context.Context, slotID string, date types.Date) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
