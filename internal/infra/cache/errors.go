package cache

import "errors"

var (
	// ErrNilClient клиент Redis не инициализирован
	ErrNilClient = errors.New("cache: redis client is nil")

	// ErrRedis ошибка обращения к Redis
	ErrRedis = errors.New("cache: redis error")

	// ErrDecode повреждённое значение в кэше
	ErrDecode = errors.New("cache: failed to decode cached value")
)
