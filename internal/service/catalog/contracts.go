package catalog

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// ClassRepository интерфейс репозитория классов
type ClassRepository interface {
	Create(ctx context.Context, c *domain.ClassOffering) (*domain.ClassOffering, error)
	Update(ctx context.Context, c *domain.ClassOffering) error
	GetByID(ctx context.Context, id string) (*domain.ClassOffering, error)
	GetByName(ctx context.Context, name string) (*domain.ClassOffering, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ClassOffering, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.TimeSlot) (*domain.TimeSlot, error)
	Update(ctx context.Context, s *domain.TimeSlot) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledSlot, error)
	ListWithClass(ctx context.Context, activeOnly bool) ([]domain.ScheduledSlot, error)
}

// SlotCacheInvalidator сбрасывает кэш активных слотов после изменений каталога
type SlotCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
