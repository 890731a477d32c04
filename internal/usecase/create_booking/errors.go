package create_booking

import "errors"

var (
	// ErrClassNotFound возвращается, когда класс не найден ни по ID, ни по названию
	ErrClassNotFound = errors.New("create_booking: class not found")

	// ErrSlotNotFound возвращается, когда указанный слот не найден
	ErrSlotNotFound = errors.New("create_booking: time slot not found")

	// ErrSlotFull возвращается, когда на слот в эту дату не осталось мест
	ErrSlotFull = errors.New("create_booking: class is full")

	// ErrDateInPast возвращается при попытке записаться на прошедшую дату
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
