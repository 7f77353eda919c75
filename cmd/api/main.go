package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"taskify/internal/app"
	"taskify/internal/config"
	"taskify/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "путь к config.yml (по умолчанию TASKIFY_CONFIG или ./config.yml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg).Init(ctx)
	if err != nil {
		logger.Error("App: ошибка инициализации", err)
		logger.Sync()
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("App: сервер завершился с ошибкой", err)
		os.Exit(1)
	}
	logger.Info("App: сервер остановлен")
}
