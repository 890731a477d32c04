package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountActive(ctx context.Context, slotID string, date types.Date) (int, error)
}

// ClassRepository интерфейс репозитория классов
type ClassRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ClassOffering, error)
	GetByName(ctx context.Context, name string) (*domain.ClassOffering, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.ScheduledSlot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений после записи. Ошибки не влияют на результат бронирования.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated(packageType, paymentStatus string)
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
