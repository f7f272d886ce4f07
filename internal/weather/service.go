package weather

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"
)

// Store is the contract the in-memory store (and any future persistent
// store) must satisfy.
type Store interface {
	SaveSnapshot(locationID string, snap Snapshot)
	GetLatest(locationID string) (Snapshot, error)
	GetRange(locationID string, from, to time.Time) ([]Snapshot, error)
}

// Renderer turns a snapshot into a display-sized frame. Implemented by
// the render package; declared here so the service does not depend on it.
type Renderer interface {
	Render(snap Snapshot, now time.Time) (*image.RGBA, error)
}

// Display consumes a finished frame, typically by encoding and uploading
// it to the keyboard.
type Display interface {
	Upload(ctx context.Context, frame *image.RGBA) error
}

// Service orchestrates the fetch -> store -> render -> upload pipeline.
type Service struct {
	provider Provider
	store    Store
	renderer Renderer
	display  Display
}

// NewService creates a new Service. display may be nil for preview-only use.
func NewService(provider Provider, store Store, renderer Renderer, display Display) *Service {
	return &Service{
		provider: provider,
		store:    store,
		renderer: renderer,
		display:  display,
	}
}

// Fetch retrieves today's forecast for the location and records it in the
// store when one is configured.
func (s *Service) Fetch(ctx context.Context, loc Location) (Snapshot, error) {
	if s.provider == nil {
		return Snapshot{}, fmt.Errorf("no weather provider configured")
	}

	snap, err := s.provider.Forecast(ctx, loc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch forecast from %s: %w", s.provider.Name(), err)
	}

	if snap.ObservedAt.IsZero() {
		snap.ObservedAt = time.Now().UTC()
	}
	if snap.LocationName == "" {
		snap.LocationName = loc.DisplayName()
	}

	if s.store != nil {
		s.store.SaveSnapshot(loc.ID, snap)
	}
	return snap, nil
}

// Render produces the display frame for a snapshot at the given time.
func (s *Service) Render(snap Snapshot, now time.Time) (*image.RGBA, error) {
	return s.renderer.Render(snap, now)
}

// Update runs the full pipeline once: fetch, render, upload.
func (s *Service) Update(ctx context.Context, loc Location, now time.Time) (Snapshot, error) {
	snap, err := s.Fetch(ctx, loc)
	if err != nil {
		return Snapshot{}, err
	}

	frame, err := s.renderer.Render(snap, now)
	if err != nil {
		return Snapshot{}, err
	}

	if s.display == nil {
		return Snapshot{}, fmt.Errorf("no display configured")
	}
	if err := s.display.Upload(ctx, frame); err != nil {
		return Snapshot{}, fmt.Errorf("upload frame: %w", err)
	}

	log.Printf("updated display: %s %s %.0f°/%.0f°C", loc.DisplayName(), snap.Condition, snap.TempMinC, snap.TempMaxC)
	return snap, nil
}

// Latest returns the most recent stored snapshot for the location.
func (s *Service) Latest(locationID string) (Snapshot, error) {
	return s.store.GetLatest(locationID)
}

// History returns stored snapshots between from and to (inclusive).
func (s *Service) History(locationID string, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(locationID, from, to)
}

// RenderLatest renders the most recent stored snapshot, for the daemon's
// preview endpoint.
func (s *Service) RenderLatest(locationID string, now time.Time) (*image.RGBA, error) {
	snap, err := s.store.GetLatest(locationID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(snap, now)
}
