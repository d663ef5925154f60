// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/keshon/buildinfo"

	"github.com/keshon/interactives/internal/commands"
	"github.com/keshon/interactives/internal/config"
	"github.com/keshon/interactives/internal/discord"
	"github.com/keshon/interactives/internal/dispatch"
	"github.com/keshon/interactives/internal/logging"
	"github.com/keshon/interactives/internal/storage"
)

func main() {
	logger := logging.New(os.Stderr, "info")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "err", err)
	}
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	info := buildinfo.Get()
	logger.Info("Starting bot", "project", info.Project, "version", info.Version, "commit", info.Commit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg.StoragePath, logger.WithPrefix("storage"))
	if err != nil {
		logger.Fatal("Failed to open storage", "path", cfg.StoragePath, "err", err)
	}
	defer store.Close()

	set := commands.All()
	d := dispatch.New(logger.WithPrefix("dispatch"),
		dispatch.WithHistory(store, logger),
		dispatch.WithTiming(logger),
	)
	if err := d.Register(set); err != nil {
		logger.Fatal("Failed to register interactives", "err", err)
	}

	bot := discord.NewBot(cfg, d, set, store, logger.WithPrefix("discord"))
	if err := bot.Run(ctx); err != nil {
		logger.Error("Discord bot error", "err", err)
		store.Close()
		os.Exit(1)
	}

	logger.Info("Discord bot exited cleanly")
}
