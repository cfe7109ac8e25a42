// Package models содержит доменную модель пользователя системы,
// включающую учётные данные, профиль и географическое положение.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// Координаты, интересы, возраст и пол — необязательные поля профиля:
// nil означает, что значение не задано. Пользователь без обеих координат
// не участвует в поиске поблизости.
type User struct {
	UID                  string    `json:"uid"`                     // Уникальный идентификатор пользователя
	Email                string    `json:"email"`                   // Электронная почта (уникальная, неизменяемая)
	PasswordHash         string    `json:"-"`                       // Хэш пароля, наружу не отдается
	FullName             string    `json:"full_name"`               // Отображаемое имя
	IsActive             bool      `json:"is_active"`               // Флаг активности учётной записи
	Latitude             *float64  `json:"latitude"`                // Широта в градусах, [-90, 90]
	Longitude            *float64  `json:"longitude"`               // Долгота в градусах, [-180, 180]
	Interests            []string  `json:"interests"`               // Упорядоченный список интересов
	MaxDistance          float64   `json:"max_distance"`            // Радиус поиска в километрах
	PreferredAgeRangeMin int       `json:"preferred_age_range_min"` // Нижняя граница возраста, >= 18
	PreferredAgeRangeMax int       `json:"preferred_age_range_max"` // Верхняя граница возраста, >= 18
	Age                  *int      `json:"age"`                     // Возраст, >= 18
	Gender               *string   `json:"gender"`                  // Пол, свободная строка
	CreatedAt            time.Time `json:"-"`
}

// HasLocation сообщает, заданы ли у пользователя обе координаты.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

// ProfileUpdate описывает частичное обновление профиля.
//
// Каждое поле моделируется как указатель: nil означает "поле не передано,
// оставить без изменений". Диапазоны значений проверяются тегами validate.
type ProfileUpdate struct {
	Latitude             *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude            *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Interests            []string `json:"interests"`
	MaxDistance          *float64 `json:"max_distance" validate:"omitempty,gte=0,lte=100"`
	PreferredAgeRangeMin *int     `json:"preferred_age_range_min" validate:"omitempty,gte=18"`
	PreferredAgeRangeMax *int     `json:"preferred_age_range_max" validate:"omitempty,gte=18"`
	Age                  *int     `json:"age" validate:"omitempty,gte=18"`
	Gender               *string  `json:"gender"`
}

// IsEmpty сообщает, что в обновлении нет ни одного поля.
func (p *ProfileUpdate) IsEmpty() bool {
	return p.Latitude == nil && p.Longitude == nil && p.Interests == nil &&
		p.MaxDistance == nil && p.PreferredAgeRangeMin == nil &&
		p.PreferredAgeRangeMax == nil && p.Age == nil && p.Gender == nil
}
