// Package display hands finished frames to their consumers: the vendor
// upload tool for the keyboard, or a PNG file for previews.
package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	"rt82weather/internal/qgif"
)

// uploadTool is the vendor CLI that owns the USB protocol. We only encode
// the QGIF payload; the actual device handshake stays with the vendor.
const uploadTool = "rt82display"

// ErrToolNotFound is returned when the vendor upload tool is not on PATH.
var ErrToolNotFound = errors.New("rt82display tool not found in PATH; install it from the vendor package")

// Device uploads frames to the RT82 keyboard via the vendor tool.
type Device struct {
	tool string
	fps  int
}

// NewDevice locates the vendor upload tool.
func NewDevice() (*Device, error) {
	path, err := exec.LookPath(uploadTool)
	if err != nil {
		return nil, ErrToolNotFound
	}
	return &Device{tool: path, fps: 2}, nil
}

// Upload encodes a single frame as a static QGIF and pushes it to the
// keyboard.
func (d *Device) Upload(ctx context.Context, frame *image.RGBA) error {
	data, err := qgif.Encode([]*image.RGBA{frame}, d.fps)
	if err != nil {
		return err
	}
	data = qgif.ForStatic(data)

	tmp, err := os.CreateTemp("", "rt82weather-*.qgif")
	if err != nil {
		return fmt.Errorf("create temp qgif: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp qgif: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, d.tool, "upload", tmp.Name())
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("upload via %s failed: %w (%s)", uploadTool, err, string(out))
	}
	return nil
}

// WritePNG saves a frame as a PNG preview at path.
func WritePNG(frame image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, frame); err != nil {
		return fmt.Errorf("encode preview png: %w", err)
	}
	return nil
}
