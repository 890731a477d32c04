package catalog

import "errors"

var (
	// ErrClassNotFound возвращается, когда класс не найден
	ErrClassNotFound = errors.New("catalog: class not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("catalog: time slot not found")

	// ErrClassAlreadyExists возвращается, если класс с таким названием уже есть
	ErrClassAlreadyExists = errors.New("catalog: class with this name already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
