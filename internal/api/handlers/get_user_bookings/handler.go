package get_user_bookings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/api/middleware"
	"github.com/m04kA/StudioBookingService/internal/service/bookings"
)

const (
	msgMissingSession = "требуется авторизация"
	msgForbidden      = "можно смотреть только свои записи"
	msgInvalidEmail   = "некорректный email"
)

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

// Handle GET /api/v1/my-bookings?email=
// email по умолчанию берётся из сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requester, ok := middleware.GetRequester(r.Context())
	if !ok {
		h.logger.Warn("GET /my-bookings - Missing session")
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))

	result, err := h.service.ListMine(r.Context(), email, requester)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /my-bookings - Access denied: user_id=%s, email=%s", requester.UserID, email)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /my-bookings - Invalid email: %q", email)
			handlers.RespondBadRequest(w, msgInvalidEmail)

		default:
			h.logger.Error("GET /my-bookings - Failed to list bookings: user_id=%s, error=%v", requester.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /my-bookings - Bookings retrieved successfully: email=%s, upcoming=%d, past=%d",
		result.Email, len(result.Upcoming), len(result.Past))
	handlers.RespondJSON(w, http.StatusOK, result)
}
