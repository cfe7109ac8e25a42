package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/geo-match/internal/http/middlewarectx"
	"github.com/magabrotheeeer/geo-match/internal/models"
)

// AuthServiceMock реализует интерфейс middlewarectx.Service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAuthMiddleware(t *testing.T) {
	resolved := &models.User{
		UID:   "11111111-1111-1111-1111-111111111111",
		Email: "user@example.com",
	}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*AuthServiceMock)
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name:       "валидный токен",
			authHeader: "Bearer good-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ResolveToken", mock.Anything, "good-token").Return(resolved, nil)
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "нет заголовка Authorization",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Basic abc123",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
		{
			name:       "невалидный или просроченный токен",
			authHeader: "Bearer bad-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("ResolveToken", mock.Anything, "bad-token").
					Return(nil, errors.New("unauthorized"))
			},
			wantStatusCode: http.StatusUnauthorized,
			wantNextCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user, ok := middlewarectx.UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, resolved, user)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.AuthMiddleware(authMock, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			mw.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatusCode, rr.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	user, ok := middlewarectx.UserFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}
