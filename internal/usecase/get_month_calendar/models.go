package get_month_calendar

import "github.com/m04kA/StudioBookingService/pkg/types"

// MonthLayout формат месяца в запросе
const MonthLayout = "2006-01"

// Request модель запроса календаря на месяц
type Request struct {
	Month string // YYYY-MM, пусто = текущий месяц
}

// Response календарь месяца, неделя начинается с воскресенья
type Response struct {
	Month         string
	Label         string // "March 2026"
	LeadingBlanks int    // пустые клетки перед первым числом
	Days          []Day
	FromFallback  bool
}

// Day клетка календаря
type Day struct {
	Date       types.Date
	Day        int
	HasClasses bool
	IsPast     bool
}
