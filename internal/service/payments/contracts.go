package payments

import (
	"context"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/internal/integrations/mpesa"
	"github.com/m04kA/StudioBookingService/internal/integrations/stripe"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	MarkPaid(ctx context.Context, id string, reference string) error
	GetPaymentStatus(ctx context.Context, id string) (domain.PaymentStatus, error)
}

// MpesaClient шлюз STK push
type MpesaClient interface {
	STKPush(ctx context.Context, in mpesa.STKPushRequest) (*mpesa.STKPushResponse, error)
}

// StripeClient списание по токену карты
type StripeClient interface {
	CreateCharge(ctx context.Context, in stripe.ChargeRequest) (*stripe.Charge, error)
}

// Metrics бизнес-метрики оплат
type Metrics interface {
	PaymentOutcome(method, outcome string)
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
