package bookings

import (
	"context"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	ListByDate(ctx context.Context, date types.Date, includeCancelled bool) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string) error
	CancelOccurrence(ctx context.Context, slotID string, date types.Date) (int, error)
	MarkPaid(ctx context.Context, id string, reference string) error
}

// SlotRepository интерфейс репозитория слотов (для ростера админки)
type SlotRepository interface {
	ListWithClass(ctx context.Context, activeOnly bool) ([]domain.ScheduledSlot, error)
}

// Metrics бизнес-метрики отмен
type Metrics interface {
	BookingsCancelled(by string, n int)
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
