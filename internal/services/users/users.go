// Package users содержит бизнес-логику создания и поиска пользователей:
// валидацию входных данных, хеширование пароля, кеширование и метрики.
package users

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lapsheet/internal/cache"
	"github.com/magabrotheeeer/lapsheet/internal/lib/sl"
	"github.com/magabrotheeeer/lapsheet/internal/metrics"
	"github.com/magabrotheeeer/lapsheet/internal/models"
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его вместе с выданным ID.
	CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error)
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Hasher хеширует пароли перед сохранением.
type Hasher interface {
	Hash(password string) (string, error)
}

// Service реализует операции с пользователями.
type Service struct {
	repo     UserRepository
	hasher   Hasher
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Users
	log      *slog.Logger
}

// Option настраивает Service.
type Option func(*Service)

// WithCache включает кэширование пользователей с временем жизни ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithMetrics подключает метрики.
func WithMetrics(m *metrics.Users) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService создаёт Service. Без WithMetrics метрики не регистрируются.
func NewService(repo UserRepository, hasher Hasher, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		hasher:  hasher,
		log:     log,
		metrics: metrics.NewUsers(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create валидирует входные данные, хеширует пароль и сохраняет пользователя.
func (s *Service) Create(ctx context.Context, in models.InsertUser) (*models.User, error) {
	const op = "services.users.Create"
	log := s.log.With(slog.String("op", op))

	if err := in.Validate(); err != nil {
		s.metrics.ValidationFailures.Inc()
		log.Warn("validation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.CreateUser(ctx, models.InsertUser{Username: in.Username, Password: hashed})
	if err != nil {
		log.Error("failed to create user", slog.String("username", in.Username), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.Created.Inc()
	log.Info("user created", slog.String("id", user.ID), slog.String("username", user.Username))

	s.cacheUser(ctx, log, user)
	return user, nil
}

// GetByUsername возвращает пользователя, сначала пытаясь прочитать его из кэша.
func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "services.users.GetByUsername"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	if s.cache != nil {
		var cached models.User
		found, err := s.cache.Get(ctx, cache.UserKey(username), &cached)
		if err != nil {
			log.Warn("failed to read user from cache", sl.Err(err))
		}
		if found {
			s.metrics.CacheRequests.WithLabelValues(metrics.CacheHit).Inc()
			return &cached, nil
		}
		s.metrics.CacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheUser(ctx, log, user)
	return user, nil
}

// Forget удаляет пользователя из кэша.
func (s *Service) Forget(ctx context.Context, username string) error {
	const op = "services.users.Forget"
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, cache.UserKey(username)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) cacheUser(ctx context.Context, log *slog.Logger, user *models.User) {
	if s.cache == nil {
		return
	}
	key := cache.UserKey(user.Username)
	if err := s.cache.Set(ctx, key, user, s.cacheTTL); err != nil {
		log.Warn("failed to cache user", slog.String("key", key), sl.Err(err))
	}
}
