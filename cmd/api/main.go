package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/insighthq/customer-intelligence/internal/api"
	"github.com/insighthq/customer-intelligence/internal/core/domain"
	"github.com/insighthq/customer-intelligence/internal/core/service"
	"github.com/insighthq/customer-intelligence/internal/infrastructure/config"
	"github.com/insighthq/customer-intelligence/internal/infrastructure/db/memory"
	"github.com/insighthq/customer-intelligence/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Customer Intelligence API
// @version      1.0
// @description  In-memory customer repository with derived health scoring,
// @description  filtering, search, pagination and aggregate statistics.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic("config: " + err.Error())
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	var seed []domain.Customer
	if cfg.SeedData {
		seed = memory.SeedCustomers()
	}
	repo := memory.NewCustomerRepository(seed)
	customerService := service.NewCustomerService(repo, log)

	e := api.NewRouter(customerService, cfg, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Int("seeded_customers", len(seed)).
			Msg("starting customer intelligence API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
