package stripe

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("stripe client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Stripe
	ErrInvalidResponse = errors.New("stripe client: invalid response")

	// ErrCardDeclined карта отклонена или токен недействителен
	ErrCardDeclined = errors.New("stripe client: card declined")
)
