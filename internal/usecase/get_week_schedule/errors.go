package get_week_schedule

import "errors"

// ErrInvalidDate возвращается при некорректной дате начала недели
var ErrInvalidDate = errors.New("get_week_schedule: invalid date")
