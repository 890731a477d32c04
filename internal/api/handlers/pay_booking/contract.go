package pay_booking

import (
	"context"

	bookingModels "github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/internal/service/payments/models"
)

type PaymentService interface {
	PayMpesa(ctx context.Context, req *models.MpesaRequest, requester bookingModels.Requester) (*models.PaymentResponse, error)
	PayStripe(ctx context.Context, req *models.StripeRequest, requester bookingModels.Requester) (*models.PaymentResponse, error)
	HandleMpesaCallback(ctx context.Context, req *models.MpesaCallbackRequest) (*models.PaymentResponse, error)
	Status(ctx context.Context, bookingID string, requester bookingModels.Requester) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
