// Package sl содержит вспомогательные функции для работы с логгером slog:
// настройку логгера под окружение и единообразные атрибуты для ошибок.
package sl

import (
	"io"
	"log/slog"
	"os"
)

// Окружения, под которые настраивается логгер.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// SetupLogger создаёт логгер, пишущий в stdout, в зависимости от окружения.
func SetupLogger(env string) *slog.Logger {
	return NewLogger(os.Stdout, env)
}

// NewLogger создаёт логгер для окружения env, пишущий в w.
// local — текстовый вывод с уровнем Debug, dev — JSON с уровнем Debug,
// prod и любые другие значения — JSON с уровнем Info.
func NewLogger(w io.Writer, env string) *slog.Logger {
	switch env {
	case EnvLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// Discard возвращает логгер, который ничего не пишет. Удобен в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
