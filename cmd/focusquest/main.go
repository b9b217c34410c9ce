package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/focusquest/internal/catalog"
	"github.com/alexanderramin/focusquest/internal/cli"
	"github.com/alexanderramin/focusquest/internal/config"
	"github.com/alexanderramin/focusquest/internal/db"
	"github.com/alexanderramin/focusquest/internal/repository"
	"github.com/alexanderramin/focusquest/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)
	dailyRepo := repository.NewSQLiteDailyStatsRepo(database)
	unlockRepo := repository.NewSQLiteUnlockRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	registry := catalog.Default()

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Timer:    cfg.TimerConfig(),
		Recorder: service.NewSessionRecorder(uow, observers...),
		XP:       service.NewXPService(uow, observers...),
		Unlocks:  service.NewUnlockService(registry, unlockRepo, uow, observers...),
		Stats:    service.NewStatsService(registry, progressRepo, dailyRepo, sessionRepo, observers...),
		History:  service.NewHistoryService(sessionRepo),
		Progress: progressRepo,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
