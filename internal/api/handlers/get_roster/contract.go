package get_roster

import (
	"context"

	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

type BookingService interface {
	Roster(ctx context.Context, date types.Date) (*models.RosterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
