package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/judgegodwins/chess-rooms/api"
	"github.com/judgegodwins/chess-rooms/room"
	"github.com/judgegodwins/chess-rooms/rules"
	"github.com/judgegodwins/chess-rooms/util"
)

func main() {
	util.InitValidator()

	config, err := util.LoadConfig()

	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	util.InitLogger(config)

	// rooms live for the life of the process
	registry, err := room.NewRegistry(rules.NewEngine())
	if err != nil {
		log.Fatal().Err(err).Msg("creating room registry")
	}

	server := api.NewServer(config, registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}

	log.Info().Msg("server shut down")
}
