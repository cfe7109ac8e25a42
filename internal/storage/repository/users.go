package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/geo-match/internal/models"
)

const userColumns = `uid, email, password_hash, full_name, is_active,
			  latitude, longitude, interests, max_distance,
			  preferred_age_range_min, preferred_age_range_max, age, gender, created_at`

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
//
// Нарушение уникальности email транслируется в ErrEmailTaken.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, full_name, is_active)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.IsActive).Scan(&newUID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его email.
//
// Сравнение точное, с учётом регистра. Отсутствующий email — ErrUserNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsersWithLocation возвращает всех пользователей, у которых заданы обе
// координаты, исключая пользователя с указанным UID.
//
// Порядок выдачи не специфицирован и соответствует порядку сканирования.
func (s *Storage) ListUsersWithLocation(ctx context.Context, excludeUID string) ([]*models.User, error) {
	const op = "storage.ListUsersWithLocation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid <> $1
			    AND latitude IS NOT NULL
			    AND longitude IS NOT NULL`
	rows, err := s.DB.QueryContext(ctx, query, excludeUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProfile применяет частичное обновление профиля пользователя.
//
// В SET попадают только переданные (не nil) поля; отсутствующие поля
// не затрагиваются. Интересы сериализуются в JSON-строку.
func (s *Storage) UpdateProfile(ctx context.Context, userUID string, upd models.ProfileUpdate) error {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var setParts []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Latitude != nil {
		set("latitude", *upd.Latitude)
	}
	if upd.Longitude != nil {
		set("longitude", *upd.Longitude)
	}
	if upd.Interests != nil {
		encoded, err := json.Marshal(upd.Interests)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		set("interests", string(encoded))
	}
	if upd.MaxDistance != nil {
		set("max_distance", *upd.MaxDistance)
	}
	if upd.PreferredAgeRangeMin != nil {
		set("preferred_age_range_min", *upd.PreferredAgeRangeMin)
	}
	if upd.PreferredAgeRangeMax != nil {
		set("preferred_age_range_max", *upd.PreferredAgeRangeMax)
	}
	if upd.Age != nil {
		set("age", *upd.Age)
	}
	if upd.Gender != nil {
		set("gender", *upd.Gender)
	}

	if len(setParts) == 0 {
		return nil
	}

	args = append(args, userUID)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE uid = $%d`,
		strings.Join(setParts, ", "), len(args))
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var latitude, longitude sql.NullFloat64
	var interests, gender sql.NullString
	var age sql.NullInt64

	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive,
		&latitude, &longitude, &interests, &u.MaxDistance,
		&u.PreferredAgeRangeMin, &u.PreferredAgeRangeMax, &age, &gender, &u.CreatedAt); err != nil {
		return nil, err
	}

	if latitude.Valid {
		u.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		u.Longitude = &longitude.Float64
	}
	if interests.Valid && interests.String != "" {
		if err := json.Unmarshal([]byte(interests.String), &u.Interests); err != nil {
			return nil, fmt.Errorf("decode interests: %w", err)
		}
	}
	if age.Valid {
		ageValue := int(age.Int64)
		u.Age = &ageValue
	}
	if gender.Valid {
		u.Gender = &gender.String
	}
	return u, nil
}
