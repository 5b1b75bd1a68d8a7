// Package config предоставляет структуры и функции для загрузки конфигурации из YAML-файла.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	RedisConnection         `yaml:"redis_connection"`
	Cache                   `yaml:"cache"`
	Password                `yaml:"password"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis  string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	RedisPassword string        `yaml:"password" env:"REDIS_PASSWORD"`
	RedisUser     string        `yaml:"user" env:"REDIS_USER"`
	RedisDB       int           `yaml:"db"`
	MaxRetries    int           `yaml:"max_retries"`
	DialTimeout   time.Duration `yaml:"dial_timeout"`
	TimeoutRedis  time.Duration `yaml:"timeoutredis"`
}

// Cache структура для настройки кэширования пользователей
type Cache struct {
	UserTTL time.Duration `yaml:"user_ttl" env-default:"10m"`
}

// Password структура для настройки хеширования паролей
type Password struct {
	BcryptCost int `yaml:"bcrypt_cost" env-default:"10"`
}

// ErrConfigPathNotSet возвращается, если переменная CONFIG_PATH пуста.
var ErrConfigPathNotSet = errors.New("CONFIG_PATH is not set")

// Load читает конфиг по пути из переменной окружения CONFIG_PATH.
func Load() (*Config, error) {
	const op = "config.Load"

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrConfigPathNotSet)
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s: file %s: %w", op, configPath, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига, завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// RedisEnabled сообщает, задан ли адрес redis.
func (c *Config) RedisEnabled() bool {
	return c.AddressRedis != ""
}

var dsnPassword = regexp.MustCompile(`(?i)(password\s*=\s*)('(?:[^'\\]|\\.)*'|\S+)`)

// RedactDSN скрывает пароль в строке подключения к PostgreSQL.
// Поддерживаются формат URL и формат key=value.
func RedactDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		if u, err := url.Parse(dsn); err == nil {
			if q := u.Query(); q.Has("password") {
				q.Set("password", "xxxxx")
				u.RawQuery = q.Encode()
			}
			return u.Redacted()
		}
		return "<invalid dsn>"
	}
	return dsnPassword.ReplaceAllString(dsn, "${1}xxxxx")
}

// String возвращает конфигурацию в читаемом виде без паролей.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"Cache:\n"+
			"  UserTTL: %s\n"+
			"Password:\n"+
			"  BcryptCost: %d\n",
		c.Env,
		RedactDSN(c.StorageConnectionString),
		c.AddressRedis,
		c.RedisUser,
		c.RedisDB,
		c.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.UserTTL,
		c.BcryptCost,
	)
}
