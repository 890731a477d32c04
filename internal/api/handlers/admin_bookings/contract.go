package admin_bookings

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

type BookingService interface {
	CancelOccurrence(ctx context.Context, slotID string, date types.Date) (*models.CancelOccurrenceResponse, error)
	MarkPaid(ctx context.Context, id string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
