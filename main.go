package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartsolutionslab/orange-car-rental/internal/app"
	"github.com/smartsolutionslab/orange-car-rental/internal/observability"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	watermillLogger := observability.NewWatermillLogger(logger)

	tp := observability.ConfigureTraceProvider()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Err(err).Msg("error shutting down trace provider")
		}
	}()

	db, err := sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open postgres connection")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer redisClient.Close()

	cfg := app.Config{
		HTTPAddr:     envOr("HTTP_ADDR", ":8080"),
		PricingURL:   os.Getenv("PRICING_URL"),
		CustomersURL: os.Getenv("CUSTOMERS_URL"),
	}

	a, err := app.NewApp(cfg, logger, watermillLogger, db, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal().Err(err).Msg("application stopped with error")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
