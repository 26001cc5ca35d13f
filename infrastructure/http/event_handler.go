package http

import (
	"context"
	"net/http"
	"rsvp-lab/domain"
	"time"

	"github.com/samber/lo"
)

// EventReader is the minimal interface needed to browse published events.
type EventReader interface {
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type eventResponse struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at"`
	Venue       string    `json:"venue"`
	BannerURL   string    `json:"banner_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		EventID:     e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartAt:     e.StartAt,
		Venue:       e.Venue,
		BannerURL:   e.BannerURL,
		CreatedAt:   e.CreatedAt,
	}
}

// HandleListEvents returns the GET /events handler, earliest event first.
func HandleListEvents(svc EventReader, errs *ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			errs.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, lo.Map(events, func(e domain.Event, _ int) eventResponse {
			return toEventResponse(e)
		}))
	}
}

// HandleGetEvent returns the GET /event/{event_id} handler.
func HandleGetEvent(svc EventReader, errs *ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetEvent(r.Context(), r.PathValue("event_id"))
		if err != nil {
			errs.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}
