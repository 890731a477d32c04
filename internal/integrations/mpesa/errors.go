package mpesa

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mpesa client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("mpesa client: invalid response")

	// ErrRejected шлюз отказал в отправке STK push
	ErrRejected = errors.New("mpesa client: stk push rejected")
)
