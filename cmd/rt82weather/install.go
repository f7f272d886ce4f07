package main

import (
	"flag"
	"fmt"
	"time"

	"rt82weather/internal/autostart"
	"rt82weather/internal/theme"
)

func cmdInstall(args []string) error {
	fs := flag.NewFlagSet("install", flag.ExitOnError)
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

	theme.Header("Installing update service")
	if err := autostart.Install(cfg.UpdateHours); err != nil {
		return err
	}

	theme.Success("Update service installed and started")
	theme.Muted("  Updates every %d hours", cfg.UpdateHours)
	return nil
}

func cmdUninstall(args []string) error {
	fs := flag.NewFlagSet("uninstall", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	theme.Banner()
	fmt.Println()

	theme.Header("Removing update service")
	if err := autostart.Uninstall(); err != nil {
		return err
	}

	theme.Success("Update service removed")
	return nil
}

func cmdStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	theme.Banner()
	fmt.Println()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	theme.Header("Configuration")

	if !cfg.IsConfigured() {
		theme.Warning("Not configured. Run: rt82weather configure")
		return nil
	}

	theme.Field("Location", cfg.LocationName)
	theme.Field("Provider", cfg.Provider)
	theme.Field("Location ID", cfg.LocationID)
	theme.Field("Interval", fmt.Sprintf("every %dh", cfg.UpdateHours))

	now := time.Now()
	if last, ok := cfg.LastUpdatedTime(); ok {
		theme.Field("Last update", last.Local().Format("2006-01-02 15:04"))
		if cfg.NeedsUpdate(now) {
			theme.Warning("Update is due")
		} else {
			theme.Success("Up to date")
		}
	} else {
		theme.Muted("  Never updated")
	}

	theme.Header("Service")

	state, err := autostart.Status()
	if err != nil {
		theme.Muted("  %v", err)
		return nil
	}
	switch {
	case !state.Installed:
		theme.Muted("  %s. Run: rt82weather install", state.Detail)
	case state.Active:
		theme.Success("%s", state.Detail)
	default:
		theme.Warning("%s", state.Detail)
	}
	return nil
}
