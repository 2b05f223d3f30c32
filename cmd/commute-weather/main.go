package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/commute-weather/internal/api/http"
	"github.com/i474232898/commute-weather/internal/config"
	"github.com/i474232898/commute-weather/internal/geocode"
	"github.com/i474232898/commute-weather/internal/scheduler"
	"github.com/i474232898/commute-weather/internal/store"
	"github.com/i474232898/commute-weather/internal/weather"
	"github.com/i474232898/commute-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	var provider weather.ForecastProvider = providers.NewOpenMeteoProvider(
		httpClient,
		providers.WithBaseURL(cfg.OpenMeteoURL),
		providers.WithTimezone(cfg.Timezone),
	)
	if cfg.ProviderRPS > 0 {
		provider = providers.NewRateLimited(provider, cfg.ProviderRPS, cfg.ProviderBurst)
	}

	var resolver geocode.Resolver
	if g, err := geocode.NewGoogle(cfg.GeocoderAPIKey); err == nil {
		resolver = g
	} else {
		log.Printf("INFO: city lookups disabled: %v", err)
	}

	service := weather.NewService(memStore, provider)

	// Scheduler that keeps reports for configured locations fresh.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "commute-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "commute-weather",
		})
	})

	httpapi.RegisterRoutes(app, service, resolver)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: commute-weather listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
