// Package main Coderr API
//
// @title           Coderr API
// @version         1.0
// @description     Маркетплейс фриланс-услуг: предложения, заказы, отзывы и профили.
//
// @host      localhost:8000
// @BasePath  /api
//
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Введите "Token" и через пробел ключ, полученный при входе.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/coderr/internal/app/coderr"
	"github.com/magabrotheeeer/coderr/internal/config"
	"github.com/magabrotheeeer/coderr/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting coderr", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := coderr.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("coderr stopped gracefully")
}
