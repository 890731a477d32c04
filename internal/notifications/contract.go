package notifications

import "context"

// EmailSender отправка письма клиенту по шаблону
type EmailSender interface {
	Configured() bool
	Send(ctx context.Context, params map[string]string) error
}

// SMSSender отправка SMS оператору студии
type SMSSender interface {
	Configured() bool
	Send(ctx context.Context, to, message string) (string, error)
}

// Metrics бизнес-метрики уведомлений
type Metrics interface {
	NotificationSent(channel string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
