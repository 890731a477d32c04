package slots

import "errors"

var (
	// ErrFallbackCatalog встроенный каталог слотов не разбирается
	ErrFallbackCatalog = errors.New("slots: invalid fallback catalog")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
