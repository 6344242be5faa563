// Package password реализует хеширование паролей и их проверку через bcrypt.
package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch: пароль не соответствует хэшу.
var ErrMismatch = errors.New("password does not match")

// dummyHash используется для сравнения, когда пользователь не найден,
// чтобы время ответа не выдавало существование имени.
var (
	dummyOnce sync.Once
	dummyHash []byte
)

// GetHash возвращает bcrypt-хэш пароля.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хэш с введённым паролем.
// Несовпадение возвращается как ErrMismatch.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// CompareDummy выполняет сравнение с фиктивным хэшем и всегда возвращает ErrMismatch.
func CompareDummy(externalPassword string) error {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("coderr"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(externalPassword))
	return ErrMismatch
}
