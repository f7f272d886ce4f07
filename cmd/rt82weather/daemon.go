package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "rt82weather/internal/api/http"
	"rt82weather/internal/config"
	"rt82weather/internal/display"
	"rt82weather/internal/scheduler"
	"rt82weather/internal/store"
	"rt82weather/internal/weather"
)

// cmdDaemon runs the update pipeline continuously on the configured
// interval and exposes a small status API for dashboards.
func cmdDaemon(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ExitOnError)
	listen := fs.String("listen", "", "status API listen address (overrides RT82W_LISTEN)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireConfigured(cfg); err != nil {
		return err
	}

	dcfg, err := config.LoadDaemon()
	if err != nil {
		return err
	}
	if *listen != "" {
		dcfg.ListenAddr = *listen
	}

	provider, err := buildProvider(cfg, dcfg.HTTPTimeout)
	if err != nil {
		return err
	}
	renderer, err := buildRenderer()
	if err != nil {
		return err
	}
	device, err := display.NewDevice()
	if err != nil {
		return err
	}

	// In-memory store with configured retention, feeding the status API.
	memStore := store.NewMemoryStore(dcfg.StoreMaxHistory, dcfg.StoreMaxAge)

	svc := weather.NewService(provider, memStore, renderer, device)

	loc := cfg.Location()
	interval := time.Duration(cfg.UpdateHours) * time.Hour
	sched := scheduler.New(loc, interval, dcfg.HTTPTimeout, svc)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "rt82weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "rt82weather",
			"location": cfg.LocationName,
		})
	})

	httpapi.RegisterRoutes(app, svc, loc)

	go func() {
		if err := app.Listen(dcfg.ListenAddr); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("daemon started: updating %s every %dh, status API on %s",
		cfg.LocationName, cfg.UpdateHours, dcfg.ListenAddr)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	return nil
}
