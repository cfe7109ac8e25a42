package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/geo-match/internal/models"
)

// MockUserLister реализует интерфейс UserLister
type MockUserLister struct {
	mock.Mock
}

func (m *MockUserLister) ListUsersWithLocation(ctx context.Context, excludeUID string) ([]*models.User, error) {
	args := m.Called(ctx, excludeUID)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func userAt(uid string, lat, lon float64) *models.User {
	return &models.User{
		UID:       uid,
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func TestMatchService_Nearby(t *testing.T) {
	requesterLat, requesterLon := 0.0, 0.0

	tests := []struct {
		name        string
		maxDistance float64
		candidates  []*models.User
		wantUIDs    []string
	}{
		{
			name:        "только кандидат внутри радиуса",
			maxDistance: 15,
			candidates: []*models.User{
				userAt("near", 0, 0.1),  // ~11.1 km
				userAt("far", 0, 0.2),   // ~22.2 km
			},
			wantUIDs: []string{"near"},
		},
		{
			name:        "дефолтный радиус 10 км при нулевом max_distance",
			maxDistance: 0,
			candidates: []*models.User{
				userAt("inside", 0, 0.05), // ~5.6 km
				userAt("outside", 0, 0.1), // ~11.1 km
			},
			wantUIDs: []string{"inside"},
		},
		{
			name:        "дефолтный радиус при отрицательном max_distance",
			maxDistance: -5,
			candidates: []*models.User{
				userAt("inside", 0, 0.05),
			},
			wantUIDs: []string{"inside"},
		},
		{
			name:        "кандидат в той же точке",
			maxDistance: 1,
			candidates: []*models.User{
				userAt("same", 0, 0),
			},
			wantUIDs: []string{"same"},
		},
		{
			name:        "нет кандидатов",
			maxDistance: 15,
			candidates:  nil,
			wantUIDs:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester := &models.User{
				UID:         "requester",
				Latitude:    &requesterLat,
				Longitude:   &requesterLon,
				MaxDistance: tt.maxDistance,
			}

			lister := new(MockUserLister)
			lister.On("ListUsersWithLocation", mock.Anything, "requester").
				Return(tt.candidates, nil)
			service := NewMatchService(lister, newNoopLogger())

			got, err := service.Nearby(context.Background(), requester)
			require.NoError(t, err)

			var gotUIDs []string
			for _, u := range got {
				gotUIDs = append(gotUIDs, u.UID)
			}
			assert.Equal(t, tt.wantUIDs, gotUIDs)
			lister.AssertExpectations(t)
		})
	}
}

func TestMatchService_Nearby_LocationNotSet(t *testing.T) {
	lat := 10.0

	tests := []struct {
		name string
		user *models.User
	}{
		{
			name: "нет обеих координат",
			user: &models.User{UID: "u1"},
		},
		{
			name: "есть только широта",
			user: &models.User{UID: "u2", Latitude: &lat},
		},
		{
			name: "есть только долгота",
			user: &models.User{UID: "u3", Longitude: &lat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := new(MockUserLister)
			service := NewMatchService(lister, newNoopLogger())

			got, err := service.Nearby(context.Background(), tt.user)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrLocationNotSet)
			lister.AssertNotCalled(t, "ListUsersWithLocation")
		})
	}
}

func TestMatchService_Nearby_RepositoryError(t *testing.T) {
	lat, lon := 0.0, 0.0
	requester := &models.User{UID: "requester", Latitude: &lat, Longitude: &lon}

	lister := new(MockUserLister)
	lister.On("ListUsersWithLocation", mock.Anything, "requester").
		Return(nil, errors.New("connection refused"))
	service := NewMatchService(lister, newNoopLogger())

	got, err := service.Nearby(context.Background(), requester)
	assert.Nil(t, got)
	assert.Error(t, err)
}
