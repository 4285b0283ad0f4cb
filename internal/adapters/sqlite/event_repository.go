package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quentinrf/plant-monitor/services/led-service/internal/domain"
)

// EventRepository implements domain.EventRepository with SQLite.
// Timestamps are stored as Unix nanoseconds.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a SQLite-backed repository
func NewEventRepository(dbPath string) (*EventRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS led_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		led INTEGER NOT NULL,
		turned_on INTEGER NOT NULL,
		run_id TEXT NOT NULL DEFAULT '',
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_led_events_timestamp ON led_events(timestamp);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &EventRepository{db: db}, nil
}

// SaveEvent stores an event in SQLite
func (r *EventRepository) SaveEvent(ctx context.Context, event *domain.LEDEvent) error {
	query := `INSERT INTO led_events (led, turned_on, run_id, timestamp) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, int64(event.LED), event.On, event.RunID, event.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}

	event.ID = id
	return nil
}

// GetEvent retrieves an event by ID
func (r *EventRepository) GetEvent(ctx context.Context, id int64) (*domain.LEDEvent, error) {
	query := `SELECT id, led, turned_on, run_id, timestamp FROM led_events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}

	return event, nil
}

// GetEventsInRange returns all events in [start, end), oldest first
func (r *EventRepository) GetEventsInRange(ctx context.Context, start, end time.Time) ([]*domain.LEDEvent, error) {
	query := `
		SELECT id, led, turned_on, run_id, timestamp
		FROM led_events
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*domain.LEDEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// GetLatestEvent returns the most recent event
func (r *EventRepository) GetLatestEvent(ctx context.Context) (*domain.LEDEvent, error) {
	query := `
		SELECT id, led, turned_on, run_id, timestamp
		FROM led_events
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest event: %w", err)
	}

	return event, nil
}

// DeleteOldEvents removes events older than specified duration
func (r *EventRepository) DeleteOldEvents(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	query := `DELETE FROM led_events WHERE timestamp < ?`

	if _, err := r.db.ExecContext(ctx, query, cutoff.UnixNano()); err != nil {
		return fmt.Errorf("failed to delete old events: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *EventRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*domain.LEDEvent, error) {
	var (
		event domain.LEDEvent
		led   int64
		nanos int64
	)

	if err := s.Scan(&event.ID, &led, &event.On, &event.RunID, &nanos); err != nil {
		return nil, err
	}

	event.LED = domain.LEDID(led)
	event.Timestamp = time.Unix(0, nanos)
	return &event, nil
}
