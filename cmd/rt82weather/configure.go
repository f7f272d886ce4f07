package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"rt82weather/internal/config"
	"rt82weather/internal/theme"
)

const maxSearchResults = 15

func cmdConfigure(args []string) error {
	fs := flag.NewFlagSet("configure", flag.ExitOnError)
	providerName := fs.String("provider", "", "weather provider (default: bbc)")
	hours := fs.Int("hours", 0, "update interval in hours (default: 6)")
	insecure := fs.Bool("insecure", false, "skip TLS certificate verification")
	if err := fs.Parse(args); err != nil {
		return err
	}

	theme.Banner()
	fmt.Println()

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if *providerName != "" {
		cfg.Provider = *providerName
	}
	if *hours > 0 {
		cfg.UpdateHours = *hours
	}
	if *insecure {
		cfg.Insecure = true
	}

	provider, err := buildProvider(cfg, 10*time.Second)
	if err != nil {
		return err
	}
	theme.Info("Using provider: %s", theme.Highlight(provider.Name()))
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	query, err := prompt(reader, "Search for a city")
	if err != nil {
		return err
	}

	theme.Muted("  Searching...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	locations, err := provider.SearchLocations(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(locations) == 0 {
		return fmt.Errorf("no locations found; try a different search term")
	}
	if len(locations) > maxSearchResults {
		locations = locations[:maxSearchResults]
	}

	theme.Header("Results")
	for i, loc := range locations {
		fmt.Printf("  %2d. %s\n", i+1, loc.DisplayName())
	}
	fmt.Println()

	choice, err := promptInt(reader, "Pick a number", 1, len(locations))
	if err != nil {
		return err
	}
	selected := locations[choice-1]

	cfg.LocationID = selected.ID
	cfg.LocationName = selected.DisplayName()
	cfg.Lat = selected.Lat
	cfg.Lon = selected.Lon

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Println()
	theme.Success("Saved: %s", theme.Highlight(selected.DisplayName()))
	theme.Muted("  Provider: %s  |  ID: %s  |  Update every %dh", cfg.Provider, selected.ID, cfg.UpdateHours)
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("empty input")
	}
	return line, nil
}

func promptInt(reader *bufio.Reader, label string, min, max int) (int, error) {
	for {
		raw, err := prompt(reader, fmt.Sprintf("%s (%d-%d)", label, min, max))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		theme.Warning("Enter a number between %d and %d", min, max)
	}
}
