package get_week_schedule

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	getWeekSchedule "github.com/m04kA/StudioBookingService/internal/usecase/get_week_schedule"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	useCase GetWeekScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/week?start=YYYY-MM-DD&classId=
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getWeekSchedule.Request{
		Start:   types.Date(strings.TrimSpace(query.Get("start"))),
		ClassID: strings.TrimSpace(query.Get("classId")),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, getWeekSchedule.ErrInvalidDate) {
			h.logger.Warn("GET /schedule/week - Invalid start: %q", req.Start)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /schedule/week - Failed to build schedule: start=%s, error=%v", req.Start, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/week - Schedule retrieved successfully: week_start=%s, class=%q",
		result.WeekStart, req.ClassID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
