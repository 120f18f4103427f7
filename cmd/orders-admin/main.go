package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(level log.Level) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(level)
}

func main() {
	os.Exit(run())
}

// run запускает сервис и возвращает код выхода процесса.
func run() int {
	setupLogger(log.InfoLevel)

	cfg, err := app.LoadConfigFromEnv()
	if err != nil {
		log.WithError(err).Error("некорректная конфигурация")
		return 1
	}
	setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"grpc_addr":    cfg.GRPCAddr,
		"metrics_addr": cfg.MetricsAddr,
		"kafka":        cfg.KafkaEnabled(),
	}).Info("запускаем orders admin")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("приложение завершилось с ошибкой")
		return 1
	}

	log.Info("orders admin остановлен")
	return 0
}
