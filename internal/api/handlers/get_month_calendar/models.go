package get_month_calendar

import getMonthCalendar "github.com/m04kA/StudioBookingService/internal/usecase/get_month_calendar"

// MonthCalendarResponse HTTP response model
type MonthCalendarResponse struct {
	Month         string        `json:"month"`
	Label         string        `json:"label"`
	LeadingBlanks int           `json:"leadingBlanks"`
	Days          []CalendarDay `json:"days"`
	FromFallback  bool          `json:"fromFallback"`
}

type CalendarDay struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	HasClasses bool   `json:"hasClasses"`
	IsPast     bool   `json:"isPast"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMonthCalendar.Response) *MonthCalendarResponse {
	out := &MonthCalendarResponse{
		Month:         resp.Month,
		Label:         resp.Label,
		LeadingBlanks: resp.LeadingBlanks,
		Days:          make([]CalendarDay, 0, len(resp.Days)),
		FromFallback:  resp.FromFallback,
	}
	for _, d := range resp.Days {
		out.Days = append(out.Days, CalendarDay{
			Date:       d.Date.String(),
			Day:        d.Day,
			HasClasses: d.HasClasses,
			IsPast:     d.IsPast,
		})
	}
	return out
}
