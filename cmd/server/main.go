// Package main is the entry point for the offer engine service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	offerhttp "github.com/tripnest/offer-engine/internal/adapter/http"
	"github.com/tripnest/offer-engine/internal/adapter/http/middleware"
	"github.com/tripnest/offer-engine/internal/adapter/provider/gds"
	"github.com/tripnest/offer-engine/internal/cache"
	"github.com/tripnest/offer-engine/internal/config"
	"github.com/tripnest/offer-engine/internal/infrastructure/logger"
	"github.com/tripnest/offer-engine/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "offer-engine",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("provider", cfg.Provider.BaseURL).
		Bool("cache", cfg.CacheEnabled()).
		Msg("Configuration loaded")

	// Upstream provider client.
	provider := gds.NewClient(gds.Config{
		BaseURL:           cfg.Provider.BaseURL,
		Timeout:           cfg.Provider.Timeout,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	}, log)

	// Result cache: Redis when configured, no-op otherwise.
	var results cache.ResultCache = cache.NewNoOpCache()
	if cfg.CacheEnabled() {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			// The engine works without a cache, just slower.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, caching disabled")
		} else {
			results = redisCache
			defer redisCache.Close()
		}
	}

	// Use cases.
	searchUC := usecase.NewOfferSearch(provider, results, cfg.Provider.Timeout, log)
	alternateUC := usecase.NewAlternateDay(provider, log)
	calendar := usecase.NewFareCalendar(provider, nil, cfg.Calendar.Watchdog, log)

	handler := offerhttp.NewOfferHandler(searchUC, alternateUC, calendar, provider, log)

	// HTTP server.
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)
	offerhttp.RegisterRoutes(e, handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
