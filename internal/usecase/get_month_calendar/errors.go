package get_month_calendar

import "errors"

// ErrInvalidMonth возвращается, когда месяц не в формате YYYY-MM
var ErrInvalidMonth = errors.New("get_month_calendar: invalid month")
