// Package nearby реализует HTTP-обработчик поиска пользователей поблизости.
package nearby

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geo-match/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geo-match/internal/http/response"
	"github.com/magabrotheeeer/geo-match/internal/lib/sl"
	"github.com/magabrotheeeer/geo-match/internal/models"
	matchservice "github.com/magabrotheeeer/geo-match/internal/services/match"
)

type Service interface {
	Nearby(ctx context.Context, user *models.User) ([]*models.User, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пользователи поблизости
// @Description Возвращает пользователей в радиусе поиска текущего пользователя.
// @Tags Users
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 400 {object} response.ErrorResponse "Не заданы координаты"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/nearby [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.nearby"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	users, err := h.service.Nearby(r.Context(), user)
	if err != nil {
		if errors.Is(err, matchservice.ErrLocationNotSet) {
			log.Error("user location not set", slog.String("uid", user.UID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("user location not set"))
			return
		}
		log.Error("failed to find nearby users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to find nearby users"))
		return
	}

	log.Info("nearby users found", slog.Int("count", len(users)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count": len(users),
		"users": users,
	}))
}
