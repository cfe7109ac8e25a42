// Package login реализует HTTP-обработчик для запросов аутентификации пользователей.
//
// В нём определяется структура Request для входных данных, выполняется декодирование JSON,
// проверка и валидация полей, а также делегирование операции входа сервису аутентификации.
// При успешной аутентификации возвращается JSON с токеном доступа;
// в случае ошибок формируются соответствующие HTTP-ответы.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/geo-match/internal/http/response"
	"github.com/magabrotheeeer/geo-match/internal/lib/sl"
	authservice "github.com/magabrotheeeer/geo-match/internal/services/auth"
)

// Request — структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, rawPassword string) (string, error)
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает токен доступа.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrUnauthorized) {
			log.Error("invalid credentials", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("incorrect email or password"))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
	}))
}
