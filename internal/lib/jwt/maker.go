// Package jwt реализует выпуск и проверку подписанных токенов доступа.
//
// Maker определяет интерфейс для создания и проверки токенов с ID и именем пользователя.
// MakerImpl: реализация на HS256 с секретным ключом и необязательным сроком жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов.
type Maker interface {
	GenerateToken(userID int64, username string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL). Нулевой TTL выпускает бессрочные токены.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
