package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"

	"github.com/strophox/sleeptober-bot/internal/command"
	"github.com/strophox/sleeptober-bot/internal/di"
	"github.com/strophox/sleeptober-bot/internal/shared/config"
	httpServer "github.com/strophox/sleeptober-bot/internal/transport/http"
)

func main() {
	// Setup structured logging with multiple handlers using slog-multi
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// Use Fanout to send logs to both handlers
	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	// Get services from DI container
	cfg := do.MustInvoke[*config.Config](injector)
	router := do.MustInvoke[*command.Router](injector)
	session := do.MustInvoke[*discordgo.Session](injector)
	httpServer := do.MustInvoke[*httpServer.Server](injector)

	// Graceful shutdown on signal or admin shutdown command
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	router.OnShutdown(cancel)

	// Connect to the Discord gateway
	if err := session.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		os.Exit(1)
	}

	// Start HTTP server
	go func() {
		if err := httpServer.Start(); err != nil {
			slog.Error("Failed to start HTTP server", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Application started", "prefix", cfg.CommandPrefix, "port", cfg.HTTPPort)
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")
}
