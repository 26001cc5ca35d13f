package domain

import "time"

// Event is published by organizers and owned by the relational event store.
// It is read-only from the RSVP side.
type Event struct {
	ID          string
	Title       string
	Description string
	StartAt     time.Time
	Venue       string
	BannerURL   string
	CreatedAt   time.Time
}
