package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя без координат и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, email, passwordHash, fullName string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3) RETURNING uid`,
		email, passwordHash, fullName).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateUserWithLocation создает тестового пользователя с координатами
func (f *TestDataFactory) CreateUserWithLocation(t *testing.T, email string, lat, lon, maxDistance float64) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users
		(email, password_hash, full_name, latitude, longitude, max_distance)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING uid`,
		email, "hashedpassword", "Test User", lat, lon, maxDistance).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateUserWithProfile создает пользователя с заполненным профилем
func (f *TestDataFactory) CreateUserWithProfile(t *testing.T, email string, lat, lon float64,
	interests []string, age int, gender string) string {
	encoded, err := json.Marshal(interests)
	require.NoError(t, err)

	var uid string
	err = f.storage.DB.QueryRow(`INSERT INTO users
		(email, password_hash, full_name, latitude, longitude, interests, age, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING uid`,
		email, "hashedpassword", "Test User", lat, lon, string(encoded), age, gender).Scan(&uid)
	require.NoError(t, err)
	return uid
}

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            full_name TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT true,
            latitude DOUBLE PRECISION,
            longitude DOUBLE PRECISION,
            interests TEXT,
            max_distance DOUBLE PRECISION NOT NULL DEFAULT 10.0,
            preferred_age_range_min INT NOT NULL DEFAULT 18,
            preferred_age_range_max INT NOT NULL DEFAULT 100,
            age INT,
            gender TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE INDEX idx_users_email ON users(email);
    `)
	require.NoError(t, err, "failed to create schema")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = postgresContainer.Terminate(ctx)
	}
	return storage, cleanup
}
