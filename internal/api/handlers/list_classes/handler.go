package list_classes

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/service/catalog"
)

const msgNotFound = "класс не найден"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/classes
// Публичный endpoint: активные классы с ценами для формы записи
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /classes - Failed to list classes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /classes - Classes retrieved successfully: count=%d", len(classes))
	handlers.RespondJSON(w, http.StatusOK, classes)
}

// HandleGet GET /api/v1/classes/{classId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classId"]

	class, err := h.service.GetClass(r.Context(), classID)
	if err != nil {
		if errors.Is(err, catalog.ErrClassNotFound) {
			h.logger.Warn("GET /classes/{id} - Class not found: class_id=%s", classID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /classes/{id} - Failed to get class: class_id=%s, error=%v", classID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, class)
}
