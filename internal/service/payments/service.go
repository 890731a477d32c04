package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/StudioBookingService/internal/domain"
	bookingRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/booking"
	"github.com/m04kA/StudioBookingService/internal/integrations/mpesa"
	"github.com/m04kA/StudioBookingService/internal/integrations/stripe"
	bookingModels "github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/internal/service/payments/models"
)

var validate = validator.New()

// Options настройки оплаты
type Options struct {
	AccountRefPrefix string
	Currency         string
	PollInterval     time.Duration
	PollAttempts     int
}

// Service оплата бронирований через M-Pesa и Stripe.
// Без клиента шлюза способ работает в демо-режиме и сразу отмечает оплату.
type Service struct {
	bookingRepo  BookingRepository
	mpesa        MpesaClient
	stripe       StripeClient
	metrics      Metrics
	timeProvider TimeProvider
	opts         Options
	logger       Logger
}

// NewService создает новый экземпляр сервиса оплаты.
// mpesaClient и stripeClient могут быть nil.
func NewService(
	bookingRepo BookingRepository,
	mpesaClient MpesaClient,
	stripeClient StripeClient,
	metrics Metrics,
	logger Logger,
	opts Options,
) *Service {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.PollAttempts <= 0 {
		opts.PollAttempts = 12
	}
	if opts.Currency == "" {
		opts.Currency = "kes"
	}
	return &Service{
		bookingRepo:  bookingRepo,
		mpesa:        mpesaClient,
		stripe:       stripeClient,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		opts:         opts,
		logger:       logger,
	}
}

// PayMpesa отправляет STK push и ждёт подтверждения (колбэк шлюза отмечает оплату).
// Таймаут ожидания не ошибка: возвращается итог OutcomeTimeout.
func (s *Service) PayMpesa(ctx context.Context, req *models.MpesaRequest, requester bookingModels.Requester) (*models.PaymentResponse, error) {
	// 1. Нормализуем и проверяем телефон
	req.Phone = NormalizePhone(req.Phone)
	if !ValidPhone(req.Phone) {
		s.logger.Warn("PayMpesa: invalid phone for booking id=%s", req.BookingID)
		return nil, ErrInvalidPhone
	}

	s.logger.Info("PayMpesa: booking id=%s", req.BookingID)

	// 2. Бронирование должно ждать оплаты
	booking, err := s.payableBooking(ctx, "PayMpesa", req.BookingID, requester)
	if err != nil {
		return nil, err
	}

	resp := &models.PaymentResponse{
		BookingID:     booking.ID,
		Method:        models.MethodMpesa,
		CustomerEmail: booking.CustomerEmail,
	}

	// 3. Демо-режим
	if s.mpesa == nil {
		s.logger.Warn("PayMpesa: M-Pesa gateway not configured, simulating payment for booking id=%s", booking.ID)
		return s.complete(ctx, "PayMpesa", resp, "MPESA_DEMO_"+s.millis())
	}

	// 4. STK push
	push, err := s.mpesa.STKPush(ctx, mpesa.STKPushRequest{
		Phone:            req.Phone,
		Amount:           booking.Price,
		BookingID:        booking.ID,
		AccountReference: booking.AccountReference(s.opts.AccountRefPrefix),
	})
	if err != nil {
		resp.Outcome = models.OutcomeFailed
		resp.Message = models.MsgNetworkError
		if errors.Is(err, mpesa.ErrRejected) && push != nil {
			resp.Message = push.Message
		}
		s.logger.Warn("PayMpesa: stk push failed for booking id=%s: %v", booking.ID, err)
		s.metrics.PaymentOutcome(models.MethodMpesa, string(resp.Outcome))
		return resp, nil
	}
	resp.CheckoutRequestID = push.CheckoutRequestID

	// 5. Ждём подтверждения
	reference, err := s.WaitForConfirmation(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if reference == "" {
		resp.Outcome = models.OutcomeTimeout
		resp.Message = models.MsgTimeout
		s.logger.Warn("PayMpesa: confirmation timed out for booking id=%s", booking.ID)
	} else {
		resp.Outcome = models.OutcomePaid
		resp.Reference = reference
		s.logger.Info("PayMpesa: booking id=%s paid, reference=%s", booking.ID, reference)
	}

	s.metrics.PaymentOutcome(models.MethodMpesa, string(resp.Outcome))
	return resp, nil
}

// WaitForConfirmation опрашивает статус оплаты с интервалом PollInterval не более PollAttempts раз.
// Возвращает референс оплаты или пустую строку, если подтверждение не пришло.
// Ошибки чтения не прерывают опрос.
func (s *Service) WaitForConfirmation(ctx context.Context, bookingID string) (string, error) {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.opts.PollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			s.logger.Warn("WaitForConfirmation: cancelled for booking id=%s: %v", bookingID, ctx.Err())
			return "", fmt.Errorf("%w: WaitForConfirmation - %v", ErrInternal, ctx.Err())
		case <-ticker.C:
		}

		status, err := s.bookingRepo.GetPaymentStatus(ctx, bookingID)
		if err != nil {
			s.logger.Warn("WaitForConfirmation: attempt %d for booking id=%s failed: %v", attempt, bookingID, err)
			continue
		}
		if status != domain.PaymentPaid {
			continue
		}

		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil || booking.PaymentReference == nil {
			s.logger.Warn("WaitForConfirmation: paid booking id=%s without reference: %v", bookingID, err)
			return string(domain.PaymentPaid), nil
		}
		return *booking.PaymentReference, nil
	}

	return "", nil
}

// HandleMpesaCallback результат STK push от шлюза. ResultCode 0 означает успешную оплату.
func (s *Service) HandleMpesaCallback(ctx context.Context, req *models.MpesaCallbackRequest) (*models.PaymentResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("HandleMpesaCallback: booking id=%s, result=%d", req.BookingID, req.ResultCode)

	resp := &models.PaymentResponse{
		BookingID:         req.BookingID,
		Method:            models.MethodMpesa,
		CheckoutRequestID: req.CheckoutRequestID,
	}

	if req.ResultCode != 0 {
		resp.Outcome = models.OutcomeFailed
		resp.Message = req.ResultDesc
		s.logger.Warn("HandleMpesaCallback: payment failed for booking id=%s: %s", req.BookingID, req.ResultDesc)
		return resp, nil
	}

	reference := strings.TrimSpace(req.ReceiptNumber)
	if reference == "" {
		reference = req.CheckoutRequestID
	}
	if reference == "" {
		return nil, fmt.Errorf("%w: receipt number is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "HandleMpesaCallback", req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.IsPaid() {
		// Повторный колбэк
		resp.Outcome = models.OutcomePaid
		if booking.PaymentReference != nil {
			resp.Reference = *booking.PaymentReference
		}
		return resp, nil
	}

	return s.complete(ctx, "HandleMpesaCallback", resp, reference)
}

// PayStripe списывает оплату по токену карты
func (s *Service) PayStripe(ctx context.Context, req *models.StripeRequest, requester bookingModels.Requester) (*models.PaymentResponse, error) {
	s.logger.Info("PayStripe: booking id=%s", req.BookingID)

	booking, err := s.payableBooking(ctx, "PayStripe", req.BookingID, requester)
	if err != nil {
		return nil, err
	}

	resp := &models.PaymentResponse{
		BookingID:     booking.ID,
		Method:        models.MethodStripe,
		CustomerEmail: booking.CustomerEmail,
	}

	// Демо-режим
	if s.stripe == nil {
		s.logger.Warn("PayStripe: Stripe not configured, simulating payment for booking id=%s", booking.ID)
		return s.complete(ctx, "PayStripe", resp, "STRIPE_DEMO_"+s.millis())
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, err = s.stripe.CreateCharge(ctx, stripe.ChargeRequest{
		Amount:      stripe.MinorUnits(booking.Price),
		Currency:    s.opts.Currency,
		Source:      req.Token,
		Description: fmt.Sprintf("%s %s %s", booking.ClassName, booking.BookingDate, booking.BookingTime),
		BookingID:   booking.ID,
	})
	if err != nil {
		resp.Outcome = models.OutcomeFailed
		resp.Message = models.MsgCardFailed
		if errors.Is(err, stripe.ErrCardDeclined) {
			resp.Message = strings.TrimPrefix(err.Error(), stripe.ErrCardDeclined.Error()+": ")
		}
		s.logger.Warn("PayStripe: charge failed for booking id=%s: %v", booking.ID, err)
		s.metrics.PaymentOutcome(models.MethodStripe, string(resp.Outcome))
		return resp, nil
	}

	return s.complete(ctx, "PayStripe", resp, "STRIPE_"+req.Token)
}

// Status текущий статус оплаты бронирования
func (s *Service) Status(ctx context.Context, bookingID string, requester bookingModels.Requester) (*models.StatusResponse, error) {
	booking, err := s.getBooking(ctx, "Status", bookingID)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin && !requester.Owns(booking) {
		return nil, ErrAccessDenied
	}

	resp := &models.StatusResponse{
		BookingID:     booking.ID,
		PaymentStatus: string(booking.PaymentStatus),
	}
	if booking.PaymentReference != nil {
		resp.Reference = *booking.PaymentReference
	}
	return resp, nil
}

// Вспомогательные методы

func (s *Service) payableBooking(ctx context.Context, op, id string, requester bookingModels.Requester) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, op, id)
	if err != nil {
		return nil, err
	}

	switch {
	case !requester.IsAdmin && !requester.Owns(booking):
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, requester.UserID, id)
		return nil, ErrAccessDenied
	case !booking.IsActive():
		return nil, ErrBookingCancelled
	case booking.IsPaid():
		return nil, ErrAlreadyPaid
	case booking.NeedsPriceFollowUp():
		s.logger.Warn("%s: booking id=%s has no price, payment must be agreed manually", op, id)
		return nil, ErrPriceUnknown
	}
	return booking, nil
}

func (s *Service) complete(ctx context.Context, op string, resp *models.PaymentResponse, reference string) (*models.PaymentResponse, error) {
	if err := s.bookingRepo.MarkPaid(ctx, resp.BookingID, reference); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to mark booking id=%s paid: %v", op, resp.BookingID, err)
		return nil, fmt.Errorf("%w: %s - mark paid: %v", ErrInternal, op, err)
	}

	resp.Outcome = models.OutcomePaid
	resp.Reference = reference
	s.metrics.PaymentOutcome(resp.Method, string(resp.Outcome))
	s.logger.Info("%s: booking id=%s paid, reference=%s", op, resp.BookingID, reference)
	return resp, nil
}

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) millis() string {
	return strconv.FormatInt(s.timeProvider.Now().UnixMilli(), 10)
}
