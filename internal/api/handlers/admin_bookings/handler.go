package admin_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/service/bookings"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOccurrence  = "нужны ID слота и дата в формате YYYY-MM-DD"
	msgNotFound           = "бронирование не найдено"
	msgAlreadyPaid        = "бронирование уже оплачено"
)

// CancelOccurrenceRequest HTTP request model
type CancelOccurrenceRequest struct {
	SlotID string `json:"slotId"`
	Date   string `json:"date"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CancelOccurrence POST /api/v1/admin/occurrences/cancel
// Отменяет все записи на слот в указанную дату
func (h *Handler) CancelOccurrence(w http.ResponseWriter, r *http.Request) {
	var req CancelOccurrenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/occurrences/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date := types.Date(strings.TrimSpace(req.Date))
	result, err := h.service.CancelOccurrence(r.Context(), strings.TrimSpace(req.SlotID), date)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("POST /admin/occurrences/cancel - Invalid input: slot=%q, date=%q", req.SlotID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidOccurrence)
			return
		}
		h.logger.Error("POST /admin/occurrences/cancel - Failed to cancel: slot=%s, date=%s, error=%v", req.SlotID, req.Date, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/occurrences/cancel - Occurrence cancelled: slot=%s, date=%s, bookings=%d",
		result.SlotID, result.Date, result.Cancelled)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// MarkPaid POST /api/v1/admin/bookings/{bookingId}/mark-paid
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	result, err := h.service.MarkPaid(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/mark-paid - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyPaid):
			h.logger.Warn("POST /admin/bookings/{id}/mark-paid - Already paid: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		default:
			h.logger.Error("POST /admin/bookings/{id}/mark-paid - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/mark-paid - Booking marked paid: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
