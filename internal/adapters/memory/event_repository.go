package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// EventRepository implements domain.EventRepository with in-memory storage.
// Events are copied in and out, so callers never share the stored values.
type EventRepository struct {
	mu     sync.RWMutex
	events map[int64]*domain.LEDEvent
	nextID int64
}

// NewEventRepository creates an empty in-memory repository
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[int64]*domain.LEDEvent),
		nextID: 1,
	}
}

// SaveEvent stores an event in memory
func (r *EventRepository) SaveEvent(ctx context.Context, event *domain.LEDEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == 0 {
		event.ID = r.nextID
		r.nextID++
	}

	stored := *event
	r.events[event.ID] = &stored
	return nil
}

// GetEvent retrieves an event by ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.LEDEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	copied := *event
	return &copied, nil
}

// GetEventsInRange returns all events in [start, end), oldest first
func (r *EventRepository) GetEventsInRange(ctx context.Context, start, end time.Time) ([]*domain.LEDEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*domain.LEDEvent
	for _, event := range r.events {
		if !event.Timestamp.Before(start) && event.Timestamp.Before(end) {
			copied := *event
			results = append(results, &copied)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return before(results[i], results[j])
	})

	return results, nil
}

// GetLatestEvent returns the most recent event
func (r *EventRepository) GetLatestEvent(ctx context.Context) (*domain.LEDEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.LEDEvent
	for _, event := range r.events {
		if latest == nil || before(latest, event) {
			latest = event
		}
	}

	if latest == nil {
		return nil, domain.ErrEventNotFound
	}
	copied := *latest
	return &copied, nil
}

// DeleteOldEvents removes events older than specified duration
func (r *EventRepository) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	for id, event := range r.events {
		if event.Timestamp.Before(cutoff) {
			delete(r.events, id)
		}
	}

	return nil
}

// before orders by timestamp, then by ID for events stamped in the same instant
func before(a, b *domain.LEDEvent) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.ID < b.ID
	}
	return a.Timestamp.Before(b.Timestamp)
}
