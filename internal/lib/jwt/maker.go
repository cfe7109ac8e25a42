// Package jwt реализует выпуск и проверку JWT токенов сессии.
//
// Maker определяет интерфейс для создания и проверки токена с email пользователя
// в качестве subject. MakerImpl — конкретная реализация на секретном ключе,
// алгоритме подписи и сроке жизни токена.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL — срок жизни токена, если он не задан в конфигурации.
const DefaultTTL = 15 * time.Minute

// ErrTokenExpired возвращается ParseToken для корректно подписанного,
// но просроченного токена.
var ErrTokenExpired = errors.New("token expired")

// Maker описывает интерфейс для выпуска и проверки JWT токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен с email в subject.
	GenerateToken(email string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает email из subject.
	ParseToken(tokenStr string) (string, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа,
// алгоритма подписи и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string            // Секретный ключ для подписи токенов.
	method    jwt.SigningMethod // Алгоритм подписи (только HMAC).
	tokenTTL  time.Duration     // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl.
//
// Идентификатор алгоритма берётся из конфигурации (HS256, HS384, HS512);
// неизвестный или не-HMAC алгоритм — ошибка. При ttl <= 0 используется DefaultTTL.
func NewJWTMaker(secretKey, algorithm string, ttl time.Duration) (*MakerImpl, error) {
	const op = "jwt.NewJWTMaker"
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("%s: unknown signing algorithm %q", op, algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%s: signing algorithm %q is not HMAC", op, algorithm)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MakerImpl{
		secretKey: secretKey,
		method:    method,
		tokenTTL:  ttl,
	}, nil
}
