// Package app собирает зависимости приложения: хранилище, миграции,
// кэш, метрики и сервис пользователей.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/lapsheet/internal/cache"
	"github.com/magabrotheeeer/lapsheet/internal/config"
	"github.com/magabrotheeeer/lapsheet/internal/lib/password"
	"github.com/magabrotheeeer/lapsheet/internal/metrics"
	"github.com/magabrotheeeer/lapsheet/internal/migrations"
	"github.com/magabrotheeeer/lapsheet/internal/services/users"
	"github.com/magabrotheeeer/lapsheet/internal/storage/repository"
)

// App хранит инициализированные зависимости.
type App struct {
	Users    *users.Service
	Registry *prometheus.Registry

	storage *repository.Storage
	cache   *cache.Cache
}

// Migrate применяет миграции, подключаясь только к базе данных.
func Migrate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	const op = "app.Migrate"

	storage, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = storage.Close()
	}()

	if err = migrate(storage); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("migrations applied")
	return nil
}

func migrate(storage *repository.Storage) error {
	db, ok := storage.SQLDB()
	if !ok {
		return nil
	}
	return migrations.Run(db)
}

// New подключается к базе данных, применяет миграции и, если задан адрес redis,
// подключает кэш пользователей.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	storage, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrate(storage); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("storage is ready")

	reg := prometheus.NewRegistry()
	opts := []users.Option{users.WithMetrics(metrics.NewUsers(reg))}

	var redisCache *cache.Cache
	if cfg.RedisEnabled() {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = storage.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, users.WithCache(redisCache, cfg.UserTTL))
		logger.Info("user cache enabled", slog.String("address", cfg.AddressRedis))
	}

	svc := users.NewService(storage, password.NewHasher(cfg.BcryptCost), logger, opts...)

	return &App{
		Users:    svc,
		Registry: reg,
		storage:  storage,
		cache:    redisCache,
	}, nil
}

// Close освобождает соединения с базой данных и redis.
func (a *App) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	errs = append(errs, a.storage.Close())
	return errors.Join(errs...)
}
