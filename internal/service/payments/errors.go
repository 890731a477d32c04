package payments

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("payments: booking not found")

	// ErrAccessDenied бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("payments: access denied")

	// ErrAlreadyPaid бронирование уже оплачено
	ErrAlreadyPaid = errors.New("payments: booking is already paid")

	// ErrBookingCancelled отменённое бронирование не оплачивается
	ErrBookingCancelled = errors.New("payments: booking is cancelled")

	// ErrPriceUnknown цена не определена, сумму согласуют со студией
	ErrPriceUnknown = errors.New("payments: price is to be agreed with the studio")

	// ErrInvalidPhone номер не в формате 254XXXXXXXXX
	ErrInvalidPhone = errors.New("payments: please enter a valid phone number in format 254XXXXXXXXX")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
