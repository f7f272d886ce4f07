package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"rt82weather/internal/common"
	"rt82weather/internal/config"
	"rt82weather/internal/display"
	"rt82weather/internal/theme"
	"rt82weather/internal/weather"
)

func cmdUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	force := fs.Bool("force", false, "update even if recently updated")
	if err := fs.Parse(args); err != nil {
		return err
	}

	theme.Banner()
	fmt.Println()

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireConfigured(cfg); err != nil {
		return err
	}

	now := time.Now()
	if !*force && !cfg.NeedsUpdate(now) {
		last, _ := cfg.LastUpdatedTime()
		theme.Info("Already up-to-date (last updated %s). Use --force to override.", last.Local().Format("15:04"))
		return nil
	}

	theme.Header("Fetching Weather")
	theme.Muted("  Location: %s", cfg.LocationName)
	theme.Muted("  Provider: %s", cfg.Provider)

	provider, err := buildProvider(cfg, 10*time.Second)
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

	svc := weather.NewService(provider, nil, renderer, device)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	snap, err := svc.Update(ctx, cfg.Location(), now)
	if err != nil {
		return err
	}
	theme.Info("%s  %.0f°/%.0f°C", common.Capitalize(snap.ConditionText), snap.TempMinC, snap.TempMaxC)

	cfg.MarkUpdated(now)
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Println()
	theme.Success("Weather uploaded!")
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	output := fs.String("o", "weather_preview.png", "output PNG path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	theme.Banner()
	fmt.Println()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if err := requireConfigured(cfg); err != nil {
		return err
	}

	theme.Header("Fetching Weather")
	theme.Muted("  Location: %s", cfg.LocationName)

	provider, err := buildProvider(cfg, 10*time.Second)
	if err != nil {
		return err
	}
	renderer, err := buildRenderer()
	if err != nil {
		return err
	}

	svc := weather.NewService(provider, nil, renderer, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := svc.Fetch(ctx, cfg.Location())
	if err != nil {
		return err
	}
	theme.Info("%s  %.0f°/%.0f°C", common.Capitalize(snap.ConditionText), snap.TempMinC, snap.TempMaxC)

	frame, err := svc.Render(snap, time.Now())
	if err != nil {
		return err
	}
	if err := display.WritePNG(frame, *output); err != nil {
		return err
	}

	fmt.Println()
	theme.Success("Saved preview: %s", theme.Highlight(*output))
	theme.Muted("  %dx%d pixels", frame.Bounds().Dx(), frame.Bounds().Dy())
	return nil
}
