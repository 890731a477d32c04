package cancel_booking

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
)

type BookingService interface {
	CancelByCustomer(ctx context.Context, id string, requester models.Requester) error
	CancelByAdmin(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
