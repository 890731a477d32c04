package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateInPast возвращается для прошедших дат
	ErrDateInPast = errors.New("get_available_slots: date is in the past")
)
