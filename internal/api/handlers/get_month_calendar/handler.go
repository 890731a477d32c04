package get_month_calendar

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	getMonthCalendar "github.com/m04kA/StudioBookingService/internal/usecase/get_month_calendar"
)

const msgInvalidMonth = "некорректный месяц, ожидается YYYY-MM"

type Handler struct {
	useCase GetMonthCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetMonthCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar/month?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getMonthCalendar.Request{Month: strings.TrimSpace(r.URL.Query().Get("month"))}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, getMonthCalendar.ErrInvalidMonth) {
			h.logger.Warn("GET /calendar/month - Invalid month: %q", req.Month)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		h.logger.Error("GET /calendar/month - Failed to build calendar: month=%s, error=%v", req.Month, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar/month - Calendar retrieved successfully: month=%s", result.Month)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
