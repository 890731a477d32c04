package pay_booking

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/api/middleware"
	"github.com/m04kA/StudioBookingService/internal/service/payments"
	"github.com/m04kA/StudioBookingService/internal/service/payments/models"
)

// CallbackTokenHeader заголовок с секретом платёжного шлюза
const CallbackTokenHeader = "X-Callback-Token"

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingSession     = "требуется авторизация"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadyPaid        = "бронирование уже оплачено"
	msgCancelled          = "бронирование отменено"
	msgPriceUnknown       = "стоимость уточняется, оплата онлайн недоступна. Свяжитесь со студией"
	msgInvalidPhone       = "введите номер в формате 254XXXXXXXXX"
	msgInvalidToken       = "некорректный токен карты"
	msgInvalidCallback    = "некорректный callback"
)

type Handler struct {
	service        PaymentService
	callbackSecret string
	logger         Logger
}

// NewHandler создает handler оплат. Пустой callbackSecret отключает проверку callback.
func NewHandler(service PaymentService, callbackSecret string, logger Logger) *Handler {
	return &Handler{
		service:        service,
		callbackSecret: callbackSecret,
		logger:         logger,
	}
}

// Mpesa POST /api/v1/bookings/{bookingId}/payments/mpesa
// Ждёт подтверждения оплаты, ответ приходит после успеха, отказа или таймаута.
func (h *Handler) Mpesa(w http.ResponseWriter, r *http.Request) {
	const op = "POST /bookings/{id}/payments/mpesa"

	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.MpesaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BookingID = mux.Vars(r)["bookingId"]

	result, err := h.service.PayMpesa(r.Context(), &req, requester)
	if err != nil {
		h.respondError(w, op, req.BookingID, msgInvalidPhone, err)
		return
	}

	h.logger.Info("%s - Payment finished: booking_id=%s, outcome=%s", op, req.BookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stripe POST /api/v1/bookings/{bookingId}/payments/stripe
func (h *Handler) Stripe(w http.ResponseWriter, r *http.Request) {
	const op = "POST /bookings/{id}/payments/stripe"

	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req models.StripeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BookingID = mux.Vars(r)["bookingId"]

	result, err := h.service.PayStripe(r.Context(), &req, requester)
	if err != nil {
		h.respondError(w, op, req.BookingID, msgInvalidToken, err)
		return
	}

	h.logger.Info("%s - Payment finished: booking_id=%s, outcome=%s", op, req.BookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Status GET /api/v1/bookings/{bookingId}/payments/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	const op = "GET /bookings/{id}/payments/status"

	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}
	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.Status(r.Context(), bookingID, requester)
	if err != nil {
		h.respondError(w, op, bookingID, msgInvalidRequestBody, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// MpesaCallback POST /api/v1/payments/mpesa/callback
// Вызывается платёжным шлюзом, не клиентом
func (h *Handler) MpesaCallback(w http.ResponseWriter, r *http.Request) {
	const op = "POST /payments/mpesa/callback"

	if h.callbackSecret != "" {
		token := r.Header.Get(CallbackTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(h.callbackSecret)) != 1 {
			h.logger.Warn("%s - Invalid callback token from %s", op, r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgInvalidCallback)
			return
		}
	}

	var req models.MpesaCallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.HandleMpesaCallback(r.Context(), &req)
	if err != nil {
		h.respondError(w, op, req.BookingID, msgInvalidCallback, err)
		return
	}

	h.logger.Info("%s - Callback processed: booking_id=%s, outcome=%s", op, req.BookingID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, op, bookingID, invalidMsg string, err error) {
	switch {
	case errors.Is(err, payments.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: booking_id=%s", op, bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, payments.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: booking_id=%s", op, bookingID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, payments.ErrAlreadyPaid):
		handlers.RespondConflict(w, msgAlreadyPaid)

	case errors.Is(err, payments.ErrBookingCancelled):
		handlers.RespondConflict(w, msgCancelled)

	case errors.Is(err, payments.ErrPriceUnknown):
		h.logger.Warn("%s - Price unknown: booking_id=%s", op, bookingID)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgPriceUnknown)

	case errors.Is(err, payments.ErrInvalidPhone):
		handlers.RespondBadRequest(w, msgInvalidPhone)

	case errors.Is(err, payments.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: booking_id=%s, error=%v", op, bookingID, err)
		handlers.RespondBadRequest(w, invalidMsg)

	default:
		h.logger.Error("%s - Payment failed: booking_id=%s, error=%v", op, bookingID, err)
		handlers.RespondInternalError(w)
	}
}
