package admin_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/StudioBookingService/internal/api/handlers"
	"github.com/m04kA/StudioBookingService/internal/service/catalog"
	"github.com/m04kA/StudioBookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidClass       = "некорректные данные класса"
	msgInvalidSlot        = "некорректные данные слота: день недели 0-6, время HH:MM, начало раньше конца"
	msgClassNotFound      = "класс не найден"
	msgSlotNotFound       = "слот не найден"
	msgClassExists        = "класс с таким названием уже существует"
)

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

// ListClasses GET /api/v1/admin/classes
// Включая неактивные
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context(), false)
	if err != nil {
		h.logger.Error("GET /admin/classes - Failed to list classes: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, classes)
}

// CreateClass POST /api/v1/admin/classes
func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req models.ClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/classes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateClass(r.Context(), &req)
	if err != nil {
		h.respondClassError(w, "POST /admin/classes", err)
		return
	}

	h.logger.Info("POST /admin/classes - Class created successfully: class_id=%s, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateClass PUT /api/v1/admin/classes/{classId}
func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	classID := mux.Vars(r)["classId"]

	var req models.ClassRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/classes/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateClass(r.Context(), classID, &req)
	if err != nil {
		h.respondClassError(w, "PUT /admin/classes/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/classes/{id} - Class updated successfully: class_id=%s", classID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListSlots GET /api/v1/admin/slots
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.ListSlots(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, slots)
}

// CreateSlot POST /api/v1/admin/slots
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSlot(r.Context(), &req)
	if err != nil {
		h.respondSlotError(w, "POST /admin/slots", err)
		return
	}

	h.logger.Info("POST /admin/slots - Slot created successfully: slot_id=%s, class=%s", result.ID, result.ClassName)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateSlot PUT /api/v1/admin/slots/{slotId}
func (h *Handler) UpdateSlot(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req models.SlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		h.respondSlotError(w, "PUT /admin/slots/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/slots/{id} - Slot updated successfully: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondClassError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidClass)

	case errors.Is(err, catalog.ErrClassNotFound):
		h.logger.Warn("%s - Class not found", op)
		handlers.RespondNotFound(w, msgClassNotFound)

	case errors.Is(err, catalog.ErrClassAlreadyExists):
		h.logger.Warn("%s - Duplicate class name", op)
		handlers.RespondConflict(w, msgClassExists)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) respondSlotError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidSlot)

	case errors.Is(err, catalog.ErrClassNotFound):
		h.logger.Warn("%s - Class not found", op)
		handlers.RespondNotFound(w, msgClassNotFound)

	case errors.Is(err, catalog.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found", op)
		handlers.RespondNotFound(w, msgSlotNotFound)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
