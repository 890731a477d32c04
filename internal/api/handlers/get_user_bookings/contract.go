package get_user_bookings

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListMine(ctx context.Context, email string, requester models.Requester) (*models.MyBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
