package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/lapsheet/internal/models"
)

// CreateUser сохраняет нового пользователя с идентификатором, выданным хранилищем.
// Перед записью проверяет InsertUser, поэтому пустые username и password не сохраняются.
// Пароль сохраняется в том виде, в котором его передал вызывающий код.
func (s *Storage) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		ID:       s.newID(),
		Username: in.Username,
		Password: in.Password,
	}
	query := `INSERT INTO users (id, username, password)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query, user.ID, user.Username, user.Password); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	query := `SELECT id, username, password
			  FROM users
			  WHERE id = $1`
	return s.getUser(ctx, op, query, id)
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	query := `SELECT id, username, password
			  FROM users
			  WHERE username = $1`
	return s.getUser(ctx, op, query, username)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	if err := s.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
