package main

import (
	"fmt"

	"gstbooks/internal/config"
	"gstbooks/internal/database"
	"gstbooks/internal/logger"
	"gstbooks/internal/router"

	"github.com/rs/zerolog/log"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("setup logger")
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	// setup router
	r := router.SetupRouter(cfg, db)

	srvLog := logger.WithComponent("server")
	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srvLog.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		srvLog.Fatal().Err(err).Msg("run server")
	}
}
