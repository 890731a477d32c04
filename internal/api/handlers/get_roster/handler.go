package get_roster

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/export"
	"github.com/m04kA/StudioBookingService/internal/service/bookings"
	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
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

// Handle GET /api/v1/admin/roster?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.roster(w, r, "GET /admin/roster")
	if !ok {
		return
	}

	h.logger.Info("GET /admin/roster - Roster retrieved successfully: date=%s, slots=%d", roster.Date, len(roster.Slots))
	handlers.RespondJSON(w, http.StatusOK, roster)
}

// HandleExport GET /api/v1/admin/roster/export?date=YYYY-MM-DD
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.roster(w, r, "GET /admin/roster/export")
	if !ok {
		return
	}

	data, err := export.RosterXLSX(roster)
	if err != nil {
		h.logger.Error("GET /admin/roster/export - Failed to build xlsx: date=%s, error=%v", roster.Date, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="roster-%s.xlsx"`, roster.Date))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("GET /admin/roster/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /admin/roster/export - Roster exported: date=%s, bytes=%d", roster.Date, len(data))
}

func (h *Handler) roster(w http.ResponseWriter, r *http.Request, op string) (*models.RosterResponse, bool) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.logger.Warn("%s - Missing date", op)
		handlers.RespondBadRequest(w, msgMissingDate)
		return nil, false
	}

	roster, err := h.service.Roster(r.Context(), types.Date(date))
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("%s - Invalid date: %q", op, date)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return nil, false
		}
		h.logger.Error("%s - Failed to build roster: date=%s, error=%v", op, date, err)
		handlers.RespondInternalError(w)
		return nil, false
	}
	return roster, true
}
