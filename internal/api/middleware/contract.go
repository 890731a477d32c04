package middleware

import (
	"context"
	"time"

	authModels "github.com/m04kA/StudioBookingService/internal/service/auth/models"
)

// Authenticator проверка токена сессии
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*authModels.Identity, error)
}

// HTTPMetrics сбор метрик HTTP-запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
