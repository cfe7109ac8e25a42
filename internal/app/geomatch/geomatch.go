// Package geomatch собирает приложение: хранилище, миграции, сервисы,
// маршруты и HTTP-сервер с корректным завершением.
package geomatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/geo-match/internal/config"
	"github.com/magabrotheeeer/geo-match/internal/lib/jwt"
	"github.com/magabrotheeeer/geo-match/internal/migrations"
	authservice "github.com/magabrotheeeer/geo-match/internal/services/auth"
	matchservice "github.com/magabrotheeeer/geo-match/internal/services/match"
	profileservice "github.com/magabrotheeeer/geo-match/internal/services/profile"
	"github.com/magabrotheeeer/geo-match/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	authService := authservice.NewAuthService(db, jwtMaker)
	profileService := profileservice.NewProfileService(db, logger)
	matchService := matchservice.NewMatchService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, profileService, matchService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
