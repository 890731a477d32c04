package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/StudioBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingSession     = "требуется авторизация"
	msgInvalidInput       = "проверьте обязательные поля: класс, дата, время, имя, email и телефон"
	msgClassNotFound      = "класс не найден"
	msgSlotNotFound       = "время занятия не найдено"
	msgSlotFull           = "на это занятие не осталось мест"
	msgDateInPast         = "нельзя записаться на прошедшую дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest(&identity.UserID)
	if useCaseReq.CustomerEmail == "" {
		useCaseReq.CustomerEmail = identity.Email
	}

	h.execute(w, r, "POST /bookings", useCaseReq)
}

// HandleAdmin POST /api/v1/admin/bookings
// Время берётся из слота, администратор может сразу отметить оплату.
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest(nil)
	useCaseReq.ByAdmin = true
	useCaseReq.MarkPaid = req.MarkPaid

	h.execute(w, r, "POST /admin/bookings", useCaseReq)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, op string, req *createBooking.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", op, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("%s - Date in past: date=%s", op, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrClassNotFound):
			h.logger.Warn("%s - Class not found: class=%s", op, req.ClassRef)
			handlers.RespondNotFound(w, msgClassNotFound)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("%s - Slot not found: slot=%v", op, req.TimeSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("%s - Slot full: slot=%v, date=%s", op, req.TimeSlotID, req.Date)
			handlers.RespondConflict(w, msgSlotFull)

		default:
			h.logger.Error("%s - Failed to create booking: class=%s, date=%s, error=%v", op, req.ClassRef, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%s, class=%s, date=%s",
		op, result.ID, result.ClassName, result.BookingDate)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
