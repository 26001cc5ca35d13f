//go:generate go run go.uber.org/mock/mockgen -source=event_repository.go -destination=../../mocks/mock_event_repository.go -package=mocks
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"rsvp-lab/domain"
	"rsvp-lab/errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var eventsSchema = []string{`
CREATE TABLE IF NOT EXISTS events (
	event_id    TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT,
	start_at    TEXT NOT NULL,
	venue       TEXT,
	banner_url  TEXT,
	created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS events_start_at ON events (start_at)`,
}

const selectEvents = `
SELECT event_id, title, description, start_at, venue, banner_url, created_at
FROM events
`

type IEventRepository interface {
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

// EventRepository reads the events published by organizers.
// Events are never written from this service.
type EventRepository struct {
	db  *sqlx.DB
	log *slog.Logger
}

func NewEventRepository(db *sqlx.DB, log *slog.Logger) *EventRepository {
	return &EventRepository{db: db, log: log}
}

// OpenEventStore connects to the SQLite database and makes sure the events
// table exists.
func OpenEventStore(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect event store: %w", err)
	}
	for _, stmt := range eventsSchema {
		if _, err = db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create events schema: %w", err)
		}
	}
	return db, nil
}

type eventRow struct {
	EventID     string         `db:"event_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	StartAt     string         `db:"start_at"`
	Venue       sql.NullString `db:"venue"`
	BannerURL   sql.NullString `db:"banner_url"`
	CreatedAt   string         `db:"created_at"`
}

func (e *EventRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	var row eventRow
	err := e.db.GetContext(ctx, &row, selectEvents+"WHERE event_id = ?", eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, fmt.Errorf("event %q: %w", eventID, errors.ErrNotFound)
	}
	if err != nil {
		return domain.Event{}, errors.NewStoreError("get event", err)
	}
	return toEvent(row)
}

// ListEvents returns every event ordered by start time, earliest first.
func (e *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var rows []eventRow
	if err := e.db.SelectContext(ctx, &rows, selectEvents+"ORDER BY start_at ASC"); err != nil {
		return nil, errors.NewStoreError("list events", err)
	}
	events := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		event, err := toEvent(row)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func toEvent(row eventRow) (domain.Event, error) {
	startAt, err := parseTimestamp(row.StartAt)
	if err != nil {
		return domain.Event{}, errors.NewStoreError("parse start_at", err)
	}
	createdAt, err := parseTimestamp(row.CreatedAt)
	if err != nil {
		return domain.Event{}, errors.NewStoreError("parse created_at", err)
	}
	return domain.Event{
		ID:          row.EventID,
		Title:       row.Title,
		Description: row.Description.String,
		StartAt:     startAt,
		Venue:       row.Venue.String,
		BannerURL:   row.BannerURL.String,
		CreatedAt:   createdAt,
	}, nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp accepts the layouts SQLite and hand written seeds produce.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", value)
}
