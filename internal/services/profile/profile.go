// Package services содержит бизнес-логику частичного обновления профиля пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geo-match/internal/models"
)

// ErrValidation возвращается, когда переданное значение поля профиля
// выходит за допустимый диапазон.
var ErrValidation = errors.New("profile validation failed")

// ProfileRepository определяет методы хранилища для работы с профилем.
type ProfileRepository interface {
	// UpdateProfile применяет частичное обновление: только не-nil поля.
	UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) error

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// ProfileService применяет частичные обновления профиля с проверкой диапазонов.
type ProfileService struct {
	repo     ProfileRepository
	validate *validator.Validate
	log      *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

// Update проверяет диапазоны переданных полей и применяет обновление.
//
// Поля со значением nil не затрагиваются. Значение вне диапазона —
// ErrValidation, в хранилище при этом ничего не пишется. Возвращает
// обновлённого пользователя.
func (s *ProfileService) Update(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error) {
	const op = "services.profile.Update"

	if err := s.validate.Struct(upd); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrValidation, validationErrs.Error())
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.IsEmpty() {
		s.log.Info("empty profile update, nothing to apply", slog.String("user_uid", userUID))
		return s.repo.GetUser(ctx, userUID)
	}

	if err := s.repo.UpdateProfile(ctx, userUID, upd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("profile updated", slog.String("user_uid", userUID))

	updated, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}
