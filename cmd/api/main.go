package main

import (
	"context"

	"zipcode-api/internal/config"
	"zipcode-api/internal/handler"
	"zipcode-api/internal/repository"
	"zipcode-api/internal/server"
	"zipcode-api/internal/service"
	"zipcode-api/internal/zipcloud"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", config.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)
	if level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// Lookup history is optional
	var history service.HistoryRepository
	if config.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("cannot create schema")
		}
		history = repo
	} else {
		log.Warn().Msg("DB_SOURCE not set, lookup history disabled")
	}

	// Initialize layers
	client := zipcloud.NewClient(zipcloud.WithBaseURL(config.ZipcloudBaseURL))
	addressService := service.NewAddressService(client, history, config.LookupTimeout)

	addressHandler := handler.NewAddressHandler(addressService)
	historyHandler := handler.NewHistoryHandler(addressService)

	r := server.NewRouter(addressHandler, historyHandler, config.AllowedOrigins())

	log.Info().Str("address", config.ServerAddress).Str("zipcloud", client.BaseURL()).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
