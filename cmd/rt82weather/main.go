// rt82weather puts the local weather on the RT82 keyboard's LCD.
package main

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"time"

	"rt82weather/internal/config"
	"rt82weather/internal/icons"
	"rt82weather/internal/render"
	"rt82weather/internal/theme"
	"rt82weather/internal/weather"

	// Register the built-in providers.
	_ "rt82weather/internal/weather/providers"
)

const version = "1.2.0"

const iconSize = 80

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "configure":
		err = cmdConfigure(os.Args[2:])
	case "update":
		err = cmdUpdate(os.Args[2:])
	case "preview":
		err = cmdPreview(os.Args[2:])
	case "daemon":
		err = cmdDaemon(os.Args[2:])
	case "install":
		err = cmdInstall(os.Args[2:])
	case "uninstall":
		err = cmdUninstall(os.Args[2:])
	case "status":
		err = cmdStatus(os.Args[2:])
	case "version", "--version":
		fmt.Println("rt82weather " + version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		theme.Error("%v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`rt82weather - Weather on your keyboard

Usage:
  rt82weather <command> [flags]

Commands:
  configure   Search for your city and save the weather location
  update      Fetch weather and upload to the RT82 keyboard display
  preview     Generate the weather image without uploading
  daemon      Run continuously with a status API
  install     Install a recurring service to update weather automatically
  uninstall   Remove the automatic weather update service
  status      Show current configuration and service state
  version     Print the version
`)
}

// loadConfig reads the persisted user config and its path.
func loadConfig() (config.Config, string, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("locate config: %w", err)
	}
	return config.Load(path), path, nil
}

func newHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	client := &http.Client{Timeout: timeout}
	if insecure {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return client
}

func buildProvider(cfg config.Config, timeout time.Duration) (weather.Provider, error) {
	return weather.NewProvider(cfg.Provider, weather.ProviderOptions{
		Client: newHTTPClient(timeout, cfg.Insecure),
	})
}

func buildRenderer() (*render.Renderer, error) {
	return render.New(icons.Default(iconSize))
}

func requireConfigured(cfg config.Config) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("not configured yet; run: rt82weather configure")
	}
	return nil
}
