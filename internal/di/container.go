package di

import (
	"github.com/bwmarrin/discordgo"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	"github.com/strophox/sleeptober-bot/internal/command"
	feedService "github.com/strophox/sleeptober-bot/internal/modules/feed/service"
	sleepRepo "github.com/strophox/sleeptober-bot/internal/modules/sleep/repository"
	sleepService "github.com/strophox/sleeptober-bot/internal/modules/sleep/service"
	"github.com/strophox/sleeptober-bot/internal/shared/config"
	discordHandler "github.com/strophox/sleeptober-bot/internal/transport/discord"
	httpServer "github.com/strophox/sleeptober-bot/internal/transport/http"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Sleep Repository
	do.Provide(injector, func(i do.Injector) (sleepRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := sleepRepo.NewFileStorage(cfg.DataFile)
		if err != nil {
			return nil, oops.With("data_file", cfg.DataFile, "context", "failed to initialize sleep repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Sleep Service
	do.Provide(injector, func(i do.Injector) (*sleepService.Service, error) {
		repo := do.MustInvoke[sleepRepo.Repository](i)
		return sleepService.New(repo), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		sleep := do.MustInvoke[*sleepService.Service](i)
		return feedService.New(sleep), nil
	})

	// Register Command Router
	do.Provide(injector, func(i do.Injector) (*command.Router, error) {
		cfg := do.MustInvoke[*config.Config](i)
		sleep := do.MustInvoke[*sleepService.Service](i)
		return command.New(cfg, sleep), nil
	})

	// Register Discord Handler
	do.Provide(injector, func(i do.Injector) (*discordHandler.Handler, error) {
		router := do.MustInvoke[*command.Router](i)
		return discordHandler.New(router), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		sleep := do.MustInvoke[*sleepService.Service](i)
		feed := do.MustInvoke[*feedService.Service](i)
		return httpServer.New(cfg, sleep, feed), nil
	})

	// Register Discord Session (handlers must be ready first)
	do.Provide(injector, func(i do.Injector) (*discordgo.Session, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*discordHandler.Handler](i)

		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			return nil, oops.With("context", "failed to create discord session").Wrap(err)
		}
		session.Identify.Intents = discordgo.IntentsGuilds |
			discordgo.IntentsGuildMessages |
			discordgo.IntentMessageContent

		handler.Register(session)

		return session, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	if session, err := do.Invoke[*discordgo.Session](injector); err == nil && session != nil {
		return session.Close()
	}
	return nil
}
