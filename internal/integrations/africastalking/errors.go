package africastalking

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("africastalking client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("africastalking client: invalid response")

	// ErrSendFailed SMS не принято шлюзом
	ErrSendFailed = errors.New("africastalking client: sms not sent")
)
