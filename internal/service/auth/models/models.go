package models

import (
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// Request модели

// SignUpRequest регистрация
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"fullName" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

// SignInRequest вход
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest изменение профиля
type UpdateProfileRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// Identity аутентифицированный пользователь из токена
type Identity struct {
	UserID    string
	Email     string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin сотрудник студии
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.RoleAdmin
}

// Response модели

// ProfileResponse данные пользователя
type ProfileResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"fullName,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DisplayName string  `json:"displayName"`
	Role        string  `json:"role"`
}

// SessionResponse выданный токен с профилем
type SessionResponse struct {
	AccessToken string          `json:"accessToken"`
	TokenType   string          `json:"tokenType"`
	ExpiresAt   string          `json:"expiresAt"`
	User        ProfileResponse `json:"user"`
}

// FromDomainUser конвертирует domain.User в ProfileResponse
func FromDomainUser(u *domain.User, role domain.Role) ProfileResponse {
	return ProfileResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		DisplayName: u.DisplayName(),
		Role:        string(role),
	}
}
