package auth

import "errors"

var (
	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrEmailTaken email уже зарегистрирован
	ErrEmailTaken = errors.New("auth: email already registered")

	// ErrUnauthenticated токен отсутствует, просрочен или неверен
	ErrUnauthenticated = errors.New("auth: authentication required")

	// ErrTokenRevoked сессия завершена
	ErrTokenRevoked = errors.New("auth: session has been signed out")

	// ErrUserNotFound пользователь токена не найден
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
