// Package autostart installs the recurring display update as a systemd
// user timer on Linux or a launchd agent on macOS.
package autostart

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	systemdServiceName = "rt82weather"
	launchdLabel       = "com.rt82weather.update"
)

// ErrUnsupportedPlatform is returned on systems without systemd or launchd.
var ErrUnsupportedPlatform = fmt.Errorf("service management not supported on %s", runtime.GOOS)

// State describes the installed service for the status command.
type State struct {
	Installed bool
	Active    bool
	Detail    string
}

// Install writes and activates the platform service running
// "rt82weather update --force" every updateHours hours.
func Install(updateHours int) error {
	execPath, err := executablePath()
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case "linux":
		dir, err := systemdUserDir()
		if err != nil {
			return err
		}
		if err := writeSystemdUnits(dir, execPath, updateHours); err != nil {
			return err
		}
		// Reload/enable failures are reported but not fatal: the unit
		// files are in place and can be enabled manually.
		run("systemctl", "--user", "daemon-reload")
		run("systemctl", "--user", "enable", "--now", systemdServiceName+".timer")
		return nil

	case "darwin":
		dir, err := launchdAgentDir()
		if err != nil {
			return err
		}
		plist := filepath.Join(dir, launchdLabel+".plist")
		if err := writeLaunchdPlist(dir, execPath, updateHours); err != nil {
			return err
		}
		run("launchctl", "unload", plist)
		run("launchctl", "load", plist)
		return nil

	default:
		return ErrUnsupportedPlatform
	}
}

// Uninstall deactivates and removes the platform service.
func Uninstall() error {
	switch runtime.GOOS {
	case "linux":
		dir, err := systemdUserDir()
		if err != nil {
			return err
		}
		run("systemctl", "--user", "disable", "--now", systemdServiceName+".timer")
		for _, ext := range []string{"service", "timer"} {
			os.Remove(filepath.Join(dir, systemdServiceName+"."+ext))
		}
		run("systemctl", "--user", "daemon-reload")
		return nil

	case "darwin":
		dir, err := launchdAgentDir()
		if err != nil {
			return err
		}
		plist := filepath.Join(dir, launchdLabel+".plist")
		if _, err := os.Stat(plist); err == nil {
			run("launchctl", "unload", plist)
			os.Remove(plist)
		}
		return nil

	default:
		return ErrUnsupportedPlatform
	}
}

// Status inspects the installed service.
func Status() (State, error) {
	switch runtime.GOOS {
	case "linux":
		dir, err := systemdUserDir()
		if err != nil {
			return State{}, err
		}
		timer := filepath.Join(dir, systemdServiceName+".timer")
		if _, err := os.Stat(timer); err != nil {
			return State{Detail: "systemd timer not installed"}, nil
		}
		out, _ := exec.Command("systemctl", "--user", "is-active", systemdServiceName+".timer").Output()
		state := strings.TrimSpace(string(out))
		return State{
			Installed: true,
			Active:    state == "active",
			Detail:    "systemd timer state: " + state,
		}, nil

	case "darwin":
		dir, err := launchdAgentDir()
		if err != nil {
			return State{}, err
		}
		plist := filepath.Join(dir, launchdLabel+".plist")
		if _, err := os.Stat(plist); err != nil {
			return State{Detail: "launch agent not installed"}, nil
		}
		loaded := exec.Command("launchctl", "list", launchdLabel).Run() == nil
		detail := "launch agent loaded"
		if !loaded {
			detail = "launch agent plist exists but is not loaded"
		}
		return State{Installed: true, Active: loaded, Detail: detail}, nil

	default:
		return State{}, ErrUnsupportedPlatform
	}
}

func systemdUserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "systemd", "user"), nil
}

func launchdAgentDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

func executablePath() (string, error) {
	if path, err := os.Executable(); err == nil {
		return path, nil
	}
	return exec.LookPath("rt82weather")
}

func writeSystemdUnits(dir, execPath string, updateHours int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	service := fmt.Sprintf(`[Unit]
Description=Update RT82 keyboard weather display

[Service]
Type=oneshot
ExecStart=%s update --force
`, execPath)

	timer := fmt.Sprintf(`[Unit]
Description=Update RT82 weather display every %dh

[Timer]
OnBootSec=1min
OnUnitActiveSec=%dh
Persistent=true

[Install]
WantedBy=timers.target
`, updateHours, updateHours)

	if err := os.WriteFile(filepath.Join(dir, systemdServiceName+".service"), []byte(service), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, systemdServiceName+".timer"), []byte(timer), 0o644)
}

func writeLaunchdPlist(dir, execPath string, updateHours int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	plist := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
  <key>Label</key>
  <string>%s</string>
  <key>ProgramArguments</key>
  <array>
    <string>%s</string>
    <string>update</string>
    <string>--force</string>
  </array>
  <key>StartInterval</key>
  <integer>%d</integer>
  <key>RunAtLoad</key>
  <true/>
</dict>
</plist>
`, launchdLabel, execPath, updateHours*3600)

	return os.WriteFile(filepath.Join(dir, launchdLabel+".plist"), []byte(plist), 0o644)
}

// run executes a management command, ignoring failures the way the
// manual instructions would (the user can re-run them by hand).
func run(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	_ = cmd.Run()
}
