package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrSameDayCancellation клиент не может отменить запись в день занятия
	ErrSameDayCancellation = errors.New("bookings: same-day cancellations are not allowed")

	// ErrCannotCancel возвращается для прошедших или уже отменённых бронирований
	ErrCannotCancel = errors.New("bookings: booking cannot be cancelled")

	// ErrAlreadyPaid возвращается при повторной отметке оплаты
	ErrAlreadyPaid = errors.New("bookings: booking is already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
