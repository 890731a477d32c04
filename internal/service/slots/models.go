package slots

import (
	"strings"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// Filter отбор слотов для конкретного представления
type Filter struct {
	// Categories фрагменты названий классов (календарь). Пусто = без фильтра.
	Categories []string
	// ClassID только слоты этого класса (недельное расписание)
	ClassID string
}

// Matches проверяет слот на соответствие фильтру
func (f Filter) Matches(s *domain.ScheduledSlot) bool {
	if f.ClassID != "" && s.Class.ID != f.ClassID {
		return false
	}
	if len(f.Categories) > 0 && !s.Class.MatchesCategory(f.Categories) {
		return false
	}
	return true
}

// CalendarFilter фильтр календаря записи
func CalendarFilter(categories []string) Filter {
	normalized := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			normalized = append(normalized, c)
		}
	}
	if len(normalized) == 0 {
		normalized = domain.DefaultCalendarCategories
	}
	return Filter{Categories: normalized}
}
