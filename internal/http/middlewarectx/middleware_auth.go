// Package middlewarectx содержит HTTP middleware для проверки токена сессии.
//
// AuthMiddleware проверяет наличие bearer-токена в заголовке Authorization,
// резолвит его в пользователя через сервис аутентификации и кладёт
// *models.User в контекст запроса. Резолв выполняется на каждый запрос,
// без кеширования между вызовами.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/geo-match/internal/http/response"
	"github.com/magabrotheeeer/geo-match/internal/lib/sl"
	"github.com/magabrotheeeer/geo-match/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для резолвнутого пользователя в контексте.
const User Key = "user"

// Service описывает интерфейс сервиса для резолва токена в пользователя.
type Service interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет bearer-токен
// в заголовке Authorization.
//
// Если токен валиден и его subject существует, кладёт пользователя в контекст
// запроса, иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext достает резолвнутого пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}
