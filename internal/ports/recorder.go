package ports

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// Recorder wraps an LEDDriver and stores every transition it performs
type Recorder struct {
	driver LEDDriver
	repo   domain.EventRepository
}

// NewRecorder creates a recording driver
func NewRecorder(driver LEDDriver, repo domain.EventRepository) *Recorder {
	return &Recorder{
		driver: driver,
		repo:   repo,
	}
}

// LEDOn switches the LED on and records the event
func (r *Recorder) LEDOn(ctx context.Context, id domain.LEDID) error {
	if err := r.driver.LEDOn(ctx, id); err != nil {
		return err
	}
	r.record(ctx, id, true)
	return nil
}

// LEDOff switches the LED off and records the event
func (r *Recorder) LEDOff(ctx context.Context, id domain.LEDID) error {
	if err := r.driver.LEDOff(ctx, id); err != nil {
		return err
	}
	r.record(ctx, id, false)
	return nil
}

// Count returns the wrapped driver's LED count
func (r *Recorder) Count() int {
	return r.driver.Count()
}

// Close closes the wrapped driver
func (r *Recorder) Close() error {
	return r.driver.Close()
}

// record saves the event; a failed save never fails the LED call
func (r *Recorder) record(ctx context.Context, id domain.LEDID, on bool) {
	event := domain.NewLEDEvent(id, on, RunIDFrom(ctx))
	if err := r.repo.SaveEvent(ctx, event); err != nil {
		log.Error().
			Err(err).
			Uint32("led", uint32(id)).
			Str("action", event.Action()).
			Msg("failed to save led event")
	}
}

// StartRetention periodically deletes events older than olderThan
// This runs in a goroutine until context is cancelled
func (r *Recorder) StartRetention(ctx context.Context, every, olderThan time.Duration) {
	log.Info().
		Dur("every", every).
		Dur("older_than", olderThan).
		Msg("starting event retention")

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.repo.DeleteOldEvents(ctx, olderThan); err != nil {
				log.Error().Err(err).Msg("failed to delete old events")
			} else {
				log.Debug().Dur("older_than", olderThan).Msg("deleted old events")
			}

		case <-ctx.Done():
			log.Info().Msg("stopping event retention")
			return
		}
	}
}
