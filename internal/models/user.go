// Package models содержит доменные структуры приложения: учётную запись
// пользователя, круги секундомера и модель таблицы (ячейки, колонки, строки).
// Структуры используются в бизнес‑логике, хранилище и при обмене JSON.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/lapsheet/internal/lib/validate"
)

// User представляет сохранённую запись таблицы users.
// После сохранения все три поля непустые.
type User struct {
	ID       string `json:"id"`       // Уникальный идентификатор, выдаётся хранилищем
	Username string `json:"username"` // Имя пользователя (уникальное)
	Password string `json:"password"` // Учётные данные, как их передал вызывающий код
}

// MaxPasswordBytes — предельная длина пароля в байтах, которую принимает bcrypt.
const MaxPasswordBytes = 72

// InsertUser — входные данные для создания пользователя.
// Содержит только те поля, которые вызывающий код может задать сам.
type InsertUser struct {
	Username string `json:"username" validate:"required,max=256"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// Validate проверяет InsertUser по правилам в тегах validate.
func (u InsertUser) Validate() error {
	const op = "models.InsertUser.Validate"
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ErrInvalidPayload возвращается, если тело запроса нельзя разобрать как InsertUser.
var ErrInvalidPayload = errors.New("invalid user payload")

// ParseInsertUser разбирает JSON-объект с полями username и password и валидирует его.
// Лишние ключи игнорируются. Отсутствующее поле, null или значение не строкового типа
// приводят к ошибке.
func ParseInsertUser(data []byte) (InsertUser, error) {
	const op = "models.ParseInsertUser"

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return InsertUser{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidPayload, err)
	}
	if raw == nil {
		return InsertUser{}, fmt.Errorf("%s: %w: payload is not an object", op, ErrInvalidPayload)
	}

	var u InsertUser
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"username", &u.Username},
		{"password", &u.Password},
	} {
		v, ok := raw[f.key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return InsertUser{}, fmt.Errorf("%s: %w: field %s is a required field", op, ErrInvalidPayload, f.key)
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return InsertUser{}, fmt.Errorf("%s: %w: field %s must be a string", op, ErrInvalidPayload, f.key)
		}
	}

	if err := u.Validate(); err != nil {
		return InsertUser{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
