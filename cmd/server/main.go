package main

import (
	"context"
	"flag"
	"geocache-server/internal/agent"
	"geocache-server/internal/engine"
	"geocache-server/internal/infrastructure/storage"
	"geocache-server/internal/server"
	"geocache-server/internal/version"
	"geocache-server/pkg/config"
	"geocache-server/pkg/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Options - параметры процесса (мир настраивается отдельно, см. engine.LoadConfig)
type Options struct {
	Port      string `env:"GEOCACHE_PORT" envDefault:"8080"`
	StoreKind string `env:"GEOCACHE_STORE" envDefault:"file"` // file | sqlite
	StorePath string `env:"GEOCACHE_STORE_PATH" envDefault:"./saves"`
	Slot      string `env:"GEOCACHE_SLOT" envDefault:"gameState"`
	Bot       bool   `env:"GEOCACHE_BOT" envDefault:"false"`
}

func init() {
	logger.Init()
}

func main() {
	// 1. Конфигурация: окружение, поверх него флаги
	var opts Options
	if err := config.ParseEnv(&opts); err != nil {
		config.Exitf("invalid environment: %v", err)
	}
	flag.StringVar(&opts.Port, "port", opts.Port, "HTTP port")
	flag.StringVar(&opts.StoreKind, "store", opts.StoreKind, "Save transport: file or sqlite")
	flag.StringVar(&opts.StorePath, "store-path", opts.StorePath, "Save directory (file) or database path (sqlite)")
	flag.StringVar(&opts.Slot, "slot", opts.Slot, "Save slot name")
	flag.BoolVar(&opts.Bot, "bot", opts.Bot, "Let a headless agent play the world")
	flag.Parse()

	logger.Log.Info("Starting Geocache Server...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid world configuration")
	}

	store, err := storage.Open(opts.StoreKind, opts.StorePath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open save storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Log.WithError(err).Warn("Failed to close save storage")
		}
	}()

	// 2. Инициализация ядра
	gameService, err := engine.NewService(cfg, store, opts.Slot)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create game service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Сохранение поднимается до старта цикла: LoadGame сам откатится к началу при битой записи
	restored := gameService.Load(ctx)
	logger.Log.WithFields(logrus.Fields{
		"slot":     opts.Slot,
		"store":    opts.StoreKind,
		"restored": restored,
	}).Info("World ready")

	loopDone := make(chan struct{})
	go func() {
		gameService.Run(ctx)
		close(loopDone)
	}()

	if opts.Bot {
		bot := agent.NewBot("bot", gameService)
		go bot.Run(ctx)
	}

	// 3. Запуск сервера
	srv := server.New(gameService, opts.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
		stop()
	}

	<-loopDone
	logger.Log.Info("Shutting down...")

	// Цикл уже остановлен, мир никто не трогает
	if err := gameService.Save(context.Background()); err != nil {
		logger.Log.WithError(err).Error("Final save failed")
	}

	logger.Log.Info("Done.")
}
