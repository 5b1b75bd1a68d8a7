// Package repository реализует хранилище пользователей на основе PostgreSQL.
// Хранилище само выдаёт идентификаторы новых записей и переводит ошибки
// базы данных в доменные ошибки пакета.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrUserExists возвращается при попытке создать пользователя с занятым username.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
)

// DBTX — подмножество database/sql, которым пользуется хранилище.
// Ему удовлетворяют и *sql.DB, и *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// IDGenerator выдаёт идентификаторы для новых записей.
type IDGenerator func() string

// Storage инкапсулирует соединение с PostgreSQL и реализует методы работы с пользователями.
type Storage struct {
	DB    DBTX
	newID IDGenerator
}

// Option настраивает Storage.
type Option func(*Storage)

// WithIDGenerator подменяет генератор идентификаторов (по умолчанию — UUID v4).
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Storage) {
		s.newID = gen
	}
}

// NewWithDB создаёт Storage поверх уже открытого соединения или транзакции.
func NewWithDB(db DBTX, opts ...Option) *Storage {
	s := &Storage{
		DB:    db,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New открывает подключение к PostgreSQL и проверяет его доступность.
func New(ctx context.Context, storageConnectionString string, opts ...Option) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return NewWithDB(db, opts...), nil
}

// SQLDB возвращает *sql.DB, если хранилище создано поверх него.
func (s *Storage) SQLDB() (*sql.DB, bool) {
	db, ok := s.DB.(*sql.DB)
	return db, ok
}

// Close закрывает соединение, если хранилище им владеет.
func (s *Storage) Close() error {
	if db, ok := s.SQLDB(); ok {
		return db.Close()
	}
	return nil
}

// CheckDatabaseReady проверяет, что таблица users создана.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.CheckDatabaseReady"

	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: required table users missing", op)
	}
	return nil
}
