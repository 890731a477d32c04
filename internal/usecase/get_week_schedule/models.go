package get_week_schedule

import (
	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Request модель запроса недельного расписания
type Request struct {
	// Start любая дата недели, пусто = текущая неделя
	Start   types.Date
	ClassID string
}

// Response неделя с понедельника по воскресенье
type Response struct {
	WeekStart    types.Date
	WeekEnd      types.Date
	Days         []Day
	Classes      []ClassOption // классы для фильтра
	FromFallback bool
}

// Day колонка расписания
type Day struct {
	Date    types.Date
	Weekday int
	Entries []Entry
}

// Entry карточка занятия
type Entry struct {
	Slot            domain.ScheduledSlot
	DisplayCapacity int
}

// ClassOption пункт фильтра по классу
type ClassOption struct {
	ID   string
	Name string
}
