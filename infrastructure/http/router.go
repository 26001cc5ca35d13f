package http

import (
	"log/slog"
	"net/http"
)

// Services groups what the router dispatches to.
type Services struct {
	RSVP interface {
		RSVPRecorder
		StatsReader
		AttendeeReader
	}
	Events EventReader
}

// NewRouter wires every route behind the CORS and request logging middleware.
func NewRouter(svc Services, allowedOrigins []string, log *slog.Logger) http.Handler {
	errs := NewErrorWriter(log)
	mux := http.NewServeMux()

	mux.Handle("POST /rsvp", HandleRecordRSVP(svc.RSVP, errs))
	mux.Handle("GET /stats/{event_id}", HandleGetStats(svc.RSVP, errs))
	mux.Handle("GET /attendees/{event_id}", HandleListAttendees(svc.RSVP, errs))
	mux.Handle("GET /events", HandleListEvents(svc.Events, errs))
	mux.Handle("GET /event/{event_id}", HandleGetEvent(svc.Events, errs))
	mux.Handle("GET /health", HandleHealth())
	mux.Handle("/", NotFoundHandler())

	return RequestLogger(CORS(allowedOrigins, mux), log)
}

// NotFoundHandler returns a JSON 404 response for unknown routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, msgRouteNotFound)
	})
}
