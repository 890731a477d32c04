package notifications

import "errors"

var (
	// ErrPublish возвращается, если событие не удалось отправить в очередь
	ErrPublish = errors.New("notifications: failed to publish event")

	// ErrDecode возвращается для сообщений очереди неверного формата
	ErrDecode = errors.New("notifications: failed to decode event")

	// ErrSend возвращается, если хотя бы один канал не доставил уведомление
	ErrSend = errors.New("notifications: failed to send notification")
)
