package slots

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// SlotRepository источник слотов
type SlotRepository interface {
	ListWithClass(ctx context.Context, activeOnly bool) ([]domain.ScheduledSlot, error)
}

// SlotCache кэш списка активных слотов
type SlotCache interface {
	Get(ctx context.Context) ([]domain.ScheduledSlot, bool, error)
	Set(ctx context.Context, slots []domain.ScheduledSlot) error
	Invalidate(ctx context.Context) error
}

// Metrics бизнес-метрики слотов
type Metrics interface {
	SlotFallbackServed()
	SlotCacheLookup(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
