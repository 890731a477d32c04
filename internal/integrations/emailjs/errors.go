package emailjs

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("emailjs client: internal error")

	// ErrSendFailed EmailJS не принял письмо
	ErrSendFailed = errors.New("emailjs client: send failed")
)
