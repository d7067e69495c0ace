package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"storefront/actions"
	"storefront/auth"
	"storefront/cache"
	"storefront/config"
	"storefront/events"
	"storefront/payments"
	"storefront/routers"
	"storefront/store"
	"storefront/validator"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("load config")
	}

	db, err := config.SetupMySQLConnection(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := store.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	rdb := config.SetupRedisConnection(cfg.Redis)
	defer rdb.Close()

	var publisher events.Publisher = events.Nop{}
	if cfg.Broker.URL != "" {
		publisher, err = events.NewAMQP(cfg.Broker.URL, cfg.Broker.Queue)
		if err != nil {
			log.Warn().Err(err).Msg("broker unavailable, order events disabled")
			publisher = events.Nop{}
		}
	}
	defer publisher.Close()

	gateway := store.NewGorm(db)
	deps := &actions.Deps{
		Store:    gateway,
		Sessions: auth.NewManager(gateway, cfg.Auth.Secret, cfg.Auth.TokenTTL()),
		Validate: validator.New(cfg.Store.PaymentMethods),
		Pages:    cache.NewRedis(rdb),
		Events:   publisher,
		Payments: payments.NewClient(cfg.Payment.BaseURL),
		PageSize: cfg.Store.PageSize,
	}

	router := routers.SetupRouters(deps)
	log.Info().Str("addr", cfg.Server.Addr).Msg("storefront listening")
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
