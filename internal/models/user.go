// Package models содержит доменные структуры маркетплейса: пользователей,
// профили, предложения, заказы и отзывы, а также типы идентичности и ошибок,
// которые разделяют слои хранилища, бизнес-логики и HTTP.
package models

import "time"

// User представляет зарегистрированную учётную запись.
type User struct {
	ID           int64     // Идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хэш пароля
	FirstName    string    // Имя
	LastName     string    // Фамилия
	IsStaff      bool      // Сотрудник платформы
	IsSuperuser  bool      // Администратор
	DateJoined   time.Time // Дата регистрации
}

// ProfileType: вариант роли профиля.
type ProfileType string

const (
	// ProfileBusiness: профиль продавца услуг.
	ProfileBusiness ProfileType = "business"
	// ProfileCustomer: профиль покупателя.
	ProfileCustomer ProfileType = "customer"
)

// Valid сообщает, является ли значение одним из допустимых вариантов.
func (t ProfileType) Valid() bool {
	switch t {
	case ProfileBusiness, ProfileCustomer:
		return true
	default:
		return false
	}
}

// Identity: аутентифицированный участник запроса.
// Передаётся явно в каждый метод сервисов.
type Identity struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	IsStaff  bool        `json:"is_staff"`
	Type     ProfileType `json:"type"` // пустое значение: у пользователя нет профиля
}

// IsBusiness сообщает, что участник владеет профилем продавца.
func (i Identity) IsBusiness() bool {
	switch i.Type {
	case ProfileBusiness:
		return true
	case ProfileCustomer:
		return false
	default:
		return false
	}
}

// IsCustomer сообщает, что участник владеет профилем покупателя.
func (i Identity) IsCustomer() bool {
	switch i.Type {
	case ProfileCustomer:
		return true
	case ProfileBusiness:
		return false
	default:
		return false
	}
}

// AuthResult возвращается при регистрации и входе.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Registration: данные для создания учётной записи вместе с профилем.
type Registration struct {
	Username     string
	Email        string
	PasswordHash string
	Type         ProfileType
}

// RegisterRequest: тело запроса регистрации.
type RegisterRequest struct {
	Username         string      `json:"username" validate:"required,max=150"`
	Email            string      `json:"email" validate:"required,email"`
	Password         string      `json:"password" validate:"required"`
	RepeatedPassword string      `json:"repeated_password" validate:"required"`
	Type             ProfileType `json:"type" validate:"required,oneof=business customer"`
}

// LoginRequest: тело запроса входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
