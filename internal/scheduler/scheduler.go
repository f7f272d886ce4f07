package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"rt82weather/internal/weather"
)

// Scheduler periodically runs the display update pipeline for the
// configured location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	location  weather.Location
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler.
func New(loc weather.Location, interval, timeout time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		location:  loc,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run fires immediately so the display is painted on startup.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = time.Duration(6) * time.Hour
	}

	_, err := s.scheduler.Every(interval).StartImmediately().Do(func() {
		log.Printf("scheduler: running display update for %s", s.location.DisplayName())

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if _, err := s.service.Update(ctx, s.location, time.Now()); err != nil {
			log.Printf("scheduler: update failed for %s: %v", s.location.DisplayName(), err)
			return
		}
		log.Printf("scheduler: completed display update")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
