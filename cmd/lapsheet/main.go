// Package main содержит утилиту командной строки для управления пользователями.
//
// Использование:
//
//	lapsheet migrate
//	lapsheet create-user < user.json
//	lapsheet get-user <username>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/lapsheet/internal/app"
	"github.com/magabrotheeeer/lapsheet/internal/config"
	"github.com/magabrotheeeer/lapsheet/internal/lib/sl"
	"github.com/magabrotheeeer/lapsheet/internal/models"
	"github.com/magabrotheeeer/lapsheet/internal/services/users"
)

const usage = "usage: lapsheet migrate | create-user < user.json | get-user <username>"

var errUsage = errors.New(usage)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.MustLoad()
	logger := sl.SetupLogger(cfg.Env)
	logger.Info("starting lapsheet", slog.String("env", cfg.Env), slog.String("command", os.Args[1]))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if os.Args[1] == "migrate" {
		// Для миграций нужна только база данных, redis не подключается.
		if err := app.Migrate(ctx, cfg, logger); err != nil {
			logger.Error("migration failed", sl.Err(err))
			os.Exit(1)
		}
		return
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	err = run(ctx, a.Users, os.Args[1:], os.Stdin, os.Stdout)
	if cerr := a.Close(); cerr != nil {
		logger.Warn("failed to close app", sl.Err(cerr))
	}
	if err != nil {
		logger.Error("command failed", sl.Err(err))
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// userService — операции, которые нужны командам.
type userService interface {
	Create(ctx context.Context, in models.InsertUser) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

var _ userService = (*users.Service)(nil)

func run(ctx context.Context, svc userService, args []string, in io.Reader, out io.Writer) error {
	switch args[0] {
	case "create-user":
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		payload, err := models.ParseInsertUser(data)
		if err != nil {
			return err
		}
		user, err := svc.Create(ctx, payload)
		if err != nil {
			return err
		}
		return writeUser(out, user)
	case "get-user":
		if len(args) < 2 {
			return fmt.Errorf("get-user: username is required: %w", errUsage)
		}
		user, err := svc.GetByUsername(ctx, args[1])
		if err != nil {
			return err
		}
		return writeUser(out, user)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

// writeUser печатает пользователя без пароля.
func writeUser(out io.Writer, user *models.User) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}{user.ID, user.Username})
}
