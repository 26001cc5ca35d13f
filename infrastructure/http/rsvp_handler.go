package http

import (
	"context"
	"encoding/json"
	"net/http"
	"rsvp-lab/domain"
	"rsvp-lab/services"

	"github.com/samber/lo"
)

const maxBodyBytes = 64 << 10

// RSVPRecorder is the minimal interface needed to record an RSVP.
type RSVPRecorder interface {
	Record(ctx context.Context, cmd services.RecordCommand) error
}

// StatsReader is the minimal interface needed to read the counters of an event.
type StatsReader interface {
	GetStats(ctx context.Context, eventID string) (domain.Stats, error)
}

// AttendeeReader is the minimal interface needed to list the respondents of an event.
type AttendeeReader interface {
	ListAttendees(ctx context.Context, eventID string, responseFilter string) ([]domain.RespondentEntry, error)
}

type recordRequest struct {
	EventID  string `json:"event_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Response string `json:"response"`
}

type statsResponse struct {
	Yes uint64 `json:"Yes"`
	No  uint64 `json:"No"`
}

type attendeeResponse struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Response  string `json:"response"`
	Timestamp int64  `json:"timestamp"`
}

// HandleRecordRSVP returns the POST /rsvp handler.
// Unknown fields and non string values are rejected, nothing is coerced.
func HandleRecordRSVP(svc RSVPRecorder, errs *ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body recordRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil || dec.More() {
			writeError(w, http.StatusBadRequest, codeInvalidBody, msgInvalidBody)
			return
		}

		err := svc.Record(r.Context(), services.RecordCommand{
			EventID:  body.EventID,
			FullName: body.FullName,
			Email:    body.Email,
			Response: body.Response,
		})
		if err != nil {
			errs.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: msgRecorded})
	}
}

// HandleGetStats returns the GET /stats/{event_id} handler.
func HandleGetStats(svc StatsReader, errs *ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.GetStats(r.Context(), r.PathValue("event_id"))
		if err != nil {
			errs.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{Yes: stats.Yes, No: stats.No})
	}
}

// HandleListAttendees returns the GET /attendees/{event_id} handler.
// The optional "response" query parameter restricts the list to Yes or No.
func HandleListAttendees(svc AttendeeReader, errs *ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.ListAttendees(r.Context(), r.PathValue("event_id"), r.URL.Query().Get("response"))
		if err != nil {
			errs.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, lo.Map(entries, func(e domain.RespondentEntry, _ int) attendeeResponse {
			return attendeeResponse{
				FullName:  e.FullName,
				Email:     e.Email,
				Response:  e.Response.String(),
				Timestamp: e.RecordedAt.UnixMilli(),
			}
		}))
	}
}
