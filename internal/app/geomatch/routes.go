// Package geomatch предоставляет маршруты для основного приложения.
package geomatch

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/geo-match/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/geo-match/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/geo-match/internal/http/handlers/health"
	"github.com/magabrotheeeer/geo-match/internal/http/handlers/user/me"
	"github.com/magabrotheeeer/geo-match/internal/http/handlers/user/nearby"
	"github.com/magabrotheeeer/geo-match/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/geo-match/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geo-match/internal/metrics"
	authservice "github.com/magabrotheeeer/geo-match/internal/services/auth"
	matchservice "github.com/magabrotheeeer/geo-match/internal/services/match"
	profileservice "github.com/magabrotheeeer/geo-match/internal/services/profile"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	profileService *profileservice.ProfileService,
	matchService *matchservice.MatchService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с аутентификацией по bearer-токену
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Get("/users/me", me.New(logger).ServeHTTP)
			r.Put("/users/profile", update.New(logger, profileService).ServeHTTP)
			r.Get("/users/nearby", nearby.New(logger, matchService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
