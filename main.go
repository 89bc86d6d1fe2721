package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/avelichko/shkolabot/bot/dialog"
	statex "github.com/avelichko/shkolabot/bot/state"
	storagex "github.com/avelichko/shkolabot/bot/storage"
	"github.com/avelichko/shkolabot/bot/telegram"
	"github.com/avelichko/shkolabot/pkg/catapi"
	configx "github.com/avelichko/shkolabot/pkg/config"
	_ "github.com/avelichko/shkolabot/pkg/logger/autoload"
	"github.com/avelichko/shkolabot/pkg/nasa"
)

type AppConfig struct {
	DatabasePath string `envconfig:"DATABASE_PATH" default:"school_data.db"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	store, err := storagex.NewSQLite(context.Background(), appCfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", appCfg.DatabasePath).Msg("open record store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("close record store")
		}
	}()

	sessions := statex.NewManager()
	breeds := catapi.MustNew(*configx.MustNew[catapi.Config]("CATAPI"))
	space := nasa.MustNew(*configx.MustNew[nasa.Config]("NASA"))

	controller, err := dialog.NewController(store, sessions, breeds, space)
	if err != nil {
		log.Fatal().Err(err).Msg("build dialogue controller")
	}
	router, err := dialog.NewRouter(controller)
	if err != nil {
		log.Fatal().Err(err).Msg("build command router")
	}

	bot, err := telegram.New(*configx.MustNew[telegram.Config]("BOT"), router)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to telegram")
	}
	if err := bot.RegisterCommands(); err != nil {
		log.Warn().Err(err).Msg("register command menu")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-stop
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		bot.Stop()
	}()

	log.Info().Str("database", appCfg.DatabasePath).Msg("bot started")
	bot.Start()
}
