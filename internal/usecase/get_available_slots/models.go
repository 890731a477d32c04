package get_available_slots

import (
	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date types.Date
	// ClassID ограничивает выдачу одним классом. Пусто = фильтр календаря по категориям.
	ClassID string
}

// Response модель ответа со списком слотов на дату
type Response struct {
	Date         types.Date
	Weekday      int
	Slots        []domain.SlotAvailability
	FromFallback bool // расписание из встроенного каталога
}

// Options настройки расчёта
type Options struct {
	DefaultCapacity    int
	CalendarCategories []string
}
