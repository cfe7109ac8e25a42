// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Поля, отсутствующие в JSON-теле, не изменяются; переданные значения
// проверяются на допустимые диапазоны.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geo-match/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geo-match/internal/http/response"
	"github.com/magabrotheeeer/geo-match/internal/lib/sl"
	"github.com/magabrotheeeer/geo-match/internal/models"
	profileservice "github.com/magabrotheeeer/geo-match/internal/services/profile"
)

type Service interface {
	Update(ctx context.Context, userUID string, upd models.ProfileUpdate) (*models.User, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Частичное обновление профиля
// @Description Обновляет только переданные поля профиля текущего пользователя.
// @Tags Users
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.ProfileUpdate true "Обновляемые поля"
// @Success 200 {object} map[string]any "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Нет или невалидный токен"
// @Failure 422 {object} response.ErrorResponse "Значение вне допустимого диапазона"
// @Router /users/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ProfileUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	updated, err := h.service.Update(r.Context(), user.UID, req)
	if err != nil {
		if errors.Is(err, profileservice.ErrValidation) {
			log.Error("profile validation failed", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("profile field out of range"))
			return
		}
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}

	log.Info("profile updated", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithData(updated))
}
