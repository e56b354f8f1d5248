package main

import (
	"context"
	"flag"
	"geocache-server/internal/engine"
	"geocache-server/internal/infrastructure/storage"
	"geocache-server/internal/tui"
	"geocache-server/pkg/config"
	"geocache-server/pkg/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// Терминальная версия игры: тот же GameService, что и у сервера, но без сети.
func main() {
	storeKind := flag.String("store", storage.KindFile, "Save transport: file or sqlite")
	storePath := flag.String("store-path", "./saves", "Save directory (file) or database path (sqlite)")
	slot := flag.String("slot", "gameState", "Save slot name")
	logPath := flag.String("log", "geocache-tui.log", "Log file (the screen is busy)")
	flag.Parse()

	// 1. Лог пишем в файл: stdout занят экраном
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		config.Exitf("open log: %v", err)
	}
	defer logFile.Close()

	var opts logger.Options
	if err := config.ParseEnv(&opts); err != nil {
		config.Exitf("invalid environment: %v", err)
	}
	logger.Configure(opts, logFile)

	// 2. Мир
	cfg, err := engine.LoadConfig()
	if err != nil {
		config.Exitf("invalid world configuration: %v", err)
	}
	store, err := storage.Open(*storeKind, *storePath)
	if err != nil {
		config.Exitf("open store: %v", err)
	}
	defer store.Close()

	game, err := engine.NewService(cfg, store, *slot)
	if err != nil {
		config.Exitf("create game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game.Load(ctx)
	loopDone := make(chan struct{})
	go func() {
		game.Run(ctx)
		close(loopDone)
	}()

	// 3. Экран
	screen, err := tcell.NewScreen()
	if err != nil {
		config.Exitf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		config.Exitf("init screen: %v", err)
	}

	runErr := tui.NewApp(screen, game).Run(ctx)
	screen.Fini()

	stop()
	<-loopDone
	if err := game.Save(context.Background()); err != nil {
		logger.Log.WithError(err).Error("Final save failed")
	}
	if runErr != nil {
		config.Exitf("terminal client: %v", runErr)
	}
}
