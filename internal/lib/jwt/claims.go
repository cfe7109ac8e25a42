// Package jwt реализует выпуск и проверку JWT токенов сессии.
//
// Claims содержит стандартный набор claims JWT; email пользователя хранится
// в поле Subject, срок действия — в ExpiresAt.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims описывает набор claims токена сессии.
type Claims struct {
	jwt.RegisteredClaims // Subject (email), ExpiresAt, IssuedAt
}

// GenerateToken выпускает токен с email пользователя в subject,
// подписывая его секретным ключом настроенным алгоритмом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(email string) (string, error) {
	const op = "jwt.GenerateToken"
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(j.method, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и валидность токена и возвращает email из subject.
//
// Просроченный токен отличим от невалидного: в первом случае ошибка
// оборачивает ErrTokenExpired. Токен без subject считается невалидным.
func (j *MakerImpl) ParseToken(tokenStr string) (string, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{j.method.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%s: invalid token", op)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%s: token has no subject", op)
	}
	return claims.Subject, nil
}
