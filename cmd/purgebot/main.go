// Package main contains the entrypoint for the purgebot Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/purgebot/purgebot/internal/bot"
	"github.com/purgebot/purgebot/internal/bot/handlers"
	"github.com/purgebot/purgebot/internal/bot/tasks"
	"github.com/purgebot/purgebot/internal/cleanup"
	"github.com/purgebot/purgebot/internal/config"
	"github.com/purgebot/purgebot/internal/database"
	"github.com/purgebot/purgebot/internal/logger"
	"github.com/purgebot/purgebot/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// db, telegram bot, cleanup pipeline, scheduler), handles graceful
// shutdown, and returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	waiters := telegram.NewReplyWaiters()

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewRecorderHandler(log, store, waiters)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	policy := cleanup.CutoffPolicy{
		MaxBulkAge:   cfg.Cleanup.MaxBulkAge,
		SafetyMargin: cfg.Cleanup.SafetyMargin,
	}
	scanner := cleanup.NewScanner(telegram.NewStoreFeed(store), cfg.Cleanup.PageSize, log)
	dispatcher := cleanup.NewDispatcher(telegram.NewDeleter(tg, store, log), cfg.Cleanup.BatchLimit, cfg.Cleanup.DeleteDelay, log)
	gate := cleanup.NewGate(telegram.NewPrompter(tg, waiters, store, log), cfg.Cleanup.ConfirmThreshold, cfg.Cleanup.ConfirmTimeout, log)
	runner := cleanup.NewRunner(scanner, dispatcher, gate, policy, log)

	hDeps := handlers.HandlerDeps{
		Logger:      log,
		Config:      cfg,
		Store:       store,
		Runner:      runner,
		Resolver:    telegram.NewResolver(store),
		Permissions: telegram.NewPermissions(tg),
		BotID:       me.ID,
	}
	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
