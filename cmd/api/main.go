package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/catalog"
	"github.com/akagifreeez/trade-values/internal/config"
	"github.com/akagifreeez/trade-values/internal/handlers"
	"github.com/akagifreeez/trade-values/internal/services"
	"github.com/akagifreeez/trade-values/internal/workers"
	"github.com/akagifreeez/trade-values/pkg/ratelimit"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Str("environment", cfg.Environment).Msg("Starting Trade Values API")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load catalog
	loadCtx, loadCancel := context.WithTimeout(ctx, time.Minute)
	itemCatalog, err := catalog.Load(loadCtx, cfg)
	loadCancel()
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("Failed to load catalog")
	}
	log.Info().Int("count", itemCatalog.Len()).Strs("tabs", itemCatalog.Tabs()).Msg("Catalog ready")

	// Rate limiter: shared through Redis when configured
	localLimiter := ratelimit.NewLocalLimiter(cfg.APIRateLimit)
	var limiter ratelimit.Limiter = localLimiter
	if cfg.RedisURL != "" {
		redisLimiter, err := ratelimit.NewRedisLimiter(cfg.RedisURL, cfg.APIRateLimit, "trade_values:rate_limit")
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create Redis rate limiter, limiting per process")
		} else {
			defer redisLimiter.Close()
			limiter = redisLimiter
		}
	}

	// Initialize services
	chartService := services.NewChartService()
	sessionService := services.NewSessionService(itemCatalog, cfg.PageSize, cfg.SessionTTL)

	// Start workers
	go workers.NewSessionJanitor(sessionService, cfg).Start(ctx)
	if limiter == localLimiter {
		go workers.NewLimiterJanitor(localLimiter, cfg).Start(ctx)
	}

	// Initialize handlers
	router := handlers.NewRouter(
		handlers.NewCatalogHandler(itemCatalog, chartService, cfg.PageSize),
		handlers.NewSessionHandler(sessionService),
		limiter,
	)

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
		cancel()
	}()

	log.Info().Str("port", cfg.Port).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Server stopped")
}
