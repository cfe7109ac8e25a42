// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/geo-match/internal/lib/jwt"
	"github.com/magabrotheeeer/geo-match/internal/lib/password"
	"github.com/magabrotheeeer/geo-match/internal/models"
	"github.com/magabrotheeeer/geo-match/internal/storage/repository"
)

// ErrUnauthorized возвращается при неверных учетных данных, невалидном или
// просроченном токене, а также когда subject токена больше не существует.
var ErrUnauthorized = errors.New("unauthorized")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и резолв токена в пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
//
// Открытый пароль нигде не сохраняется. Занятый email транслируется
// наверх как repository.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, fullName string) (*models.User, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		FullName:     fullName,
		IsActive:     true,
	}
	if _, err := s.users.RegisterUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// Login проверяет пароль пользователя и выпускает токен доступа.
//
// Несуществующий email и неверный пароль неразличимы для вызывающего:
// оба случая — ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Login"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !password.Verify(user.PasswordHash, rawPassword) {
		return "", fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// ResolveToken проверяет токен и возвращает пользователя из его subject.
//
// Резолв выполняется на каждый запрос заново, без кеширования. Любая причина
// отказа (подпись, срок, отсутствующий subject, удалённый пользователь)
// сворачивается в ErrUnauthorized.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	const op = "services.auth.ResolveToken"
	email, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
