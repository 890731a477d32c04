package domain

import "time"

// User is a customer or staff account
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     *string
	Phone        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName full name when set, otherwise the email
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}

// IsAdmin true for staff accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
