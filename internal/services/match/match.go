// Package services содержит бизнес-логику поиска пользователей поблизости.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/geo-match/internal/lib/geo"
	"github.com/magabrotheeeer/geo-match/internal/models"
)

// ErrLocationNotSet возвращается, когда у запрашивающего пользователя
// не заданы обе координаты.
var ErrLocationNotSet = errors.New("user location is not set")

// defaultRadiusKm — радиус поиска, если у пользователя он не задан
// или не положителен.
const defaultRadiusKm = 10.0

// UserLister определяет выборку кандидатов для поиска поблизости.
type UserLister interface {
	// ListUsersWithLocation возвращает всех пользователей с координатами,
	// исключая пользователя с указанным UID.
	ListUsersWithLocation(ctx context.Context, excludeUID string) ([]*models.User, error)
}

// MatchService реализует поиск пользователей в радиусе запрашивающего.
type MatchService struct {
	users UserLister
	log   *slog.Logger
}

// NewMatchService создает новый экземпляр MatchService.
func NewMatchService(users UserLister, log *slog.Logger) *MatchService {
	return &MatchService{
		users: users,
		log:   log,
	}
}

// Nearby возвращает пользователей в радиусе поиска запрашивающего.
//
// Радиус берётся из профиля (MaxDistance), при нулевом или отрицательном
// значении — defaultRadiusKm. Кандидаты выбираются полным проходом по всем
// пользователям с координатами; граница радиуса включительная. Порядок
// результата не специфицирован.
func (s *MatchService) Nearby(ctx context.Context, user *models.User) ([]*models.User, error) {
	const op = "services.match.Nearby"
	if !user.HasLocation() {
		return nil, fmt.Errorf("%s: %w", op, ErrLocationNotSet)
	}

	radius := user.MaxDistance
	if radius <= 0 {
		radius = defaultRadiusKm
	}

	candidates, err := s.users.ListUsersWithLocation(ctx, user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var nearby []*models.User
	for _, candidate := range candidates {
		distance := geo.Distance(*user.Latitude, *user.Longitude,
			*candidate.Latitude, *candidate.Longitude)
		if distance <= radius {
			nearby = append(nearby, candidate)
		}
	}

	s.log.Info("nearby scan finished",
		slog.Int("candidates", len(candidates)),
		slog.Int("matched", len(nearby)),
		slog.Float64("radius_km", radius))
	return nearby, nil
}
