package models

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound: запрошенный объект не существует.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: у участника нет прав на операцию.
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable: зависимость не настроена.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError: отсутствие объекта с сообщением под заданным ключом ответа.
type NotFoundError struct {
	Key     string // detail, message или error
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Is позволяет сравнивать с ErrNotFound через errors.Is.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound возвращает ошибку с ключом detail.
func NotFound(msg string) error {
	return &NotFoundError{Key: "detail", Message: msg}
}

// ForbiddenError: отказ в доступе с пояснением.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// Is позволяет сравнивать с ErrForbidden через errors.Is.
func (e *ForbiddenError) Is(target error) bool { return target == ErrForbidden }

// Forbidden возвращает ForbiddenError с сообщением.
func Forbidden(msg string) error {
	return &ForbiddenError{Message: msg}
}

// NonFieldErrors: ключ ошибок, не относящихся к конкретному полю.
const NonFieldErrors = "non_field_errors"

// ValidationErrors: ошибки валидации, сгруппированные по полям.
type ValidationErrors map[string][]string

// Add добавляет сообщение к полю.
func (v ValidationErrors) Add(field, msg string) {
	v[field] = append(v[field], msg)
}

// Err возвращает nil, если ошибок нет.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldError возвращает ValidationErrors с одним сообщением.
func FieldError(field, msg string) ValidationErrors {
	return ValidationErrors{field: {msg}}
}
