package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"rsvp-lab/clock"
	"rsvp-lab/infrastructure/storage"
	"rsvp-lab/services"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	eventsDB, err := storage.OpenEventStore(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = eventsDB.Close() })
	_, err = eventsDB.Exec(`INSERT INTO events (event_id, title, start_at) VALUES
		('E1', 'Go meetup', '2025-11-07T18:30:00Z'),
		('E0', 'Kick-off', '2025-09-01T08:00:00Z')`)
	require.NoError(t, err)

	rsvpService := services.NewRSVPService(
		storage.NewRSVPRepository(db, log, storage.DefaultMaxTxnBackoff),
		clock.NewSystem(), log, time.Second)
	eventService := services.NewEventService(storage.NewEventRepository(eventsDB, log), log)

	return NewRouter(Services{RSVP: rsvpService, Events: eventService}, []string{"*"}, log)
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r.WithContext(context.Background()))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
	return rec
}

func Test_Router_RSVP_Scenario(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/rsvp", `{"event_id":"E1","full_name":"Alice","email":"a@x.com","response":"Yes"}`)
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"message":"RSVP recorded!"}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/stats/E1", "")
	req.JSONEq(`{"Yes":1,"No":0}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/rsvp", `{"event_id":"E1","full_name":"Alice","email":"a@x.com","response":"No"}`)
	req.Equal(http.StatusConflict, rec.Code)
	req.Equal(codeDuplicateRsvp, decodeMessage(t, rec).Code)

	rec = do(t, router, http.MethodGet, "/stats/E1", "")
	req.JSONEq(`{"Yes":1,"No":0}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/rsvp", `{"event_id":"E1","full_name":"Bob","email":"b@x.com","response":"No"}`)
	req.Equal(http.StatusOK, rec.Code)

	var attendees []attendeeResponse
	rec = do(t, router, http.MethodGet, "/attendees/E1", "")
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &attendees))
	req.Len(attendees, 2)

	rec = do(t, router, http.MethodGet, "/attendees/E1?response=No", "")
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &attendees))
	req.Len(attendees, 1)
	req.Equal("Bob", attendees[0].FullName)

	rec = do(t, router, http.MethodGet, "/attendees/E1?response=Maybe", "")
	req.Equal(http.StatusBadRequest, rec.Code)
}

func Test_Router_Validation_Does_Not_Touch_The_Store(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/rsvp", `{"event_id":"E2","full_name":"","email":"a@x.com","response":"Yes"}`)
	req.Equal(http.StatusBadRequest, rec.Code)
	req.Equal(msgMissingFields, decodeMessage(t, rec).Message)

	rec = do(t, router, http.MethodPost, "/rsvp", `{"event_id":"E1","full_name":"Carl","email":"c@x.com","response":"Maybe"}`)
	req.Equal(http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/stats/E2", "")
	req.JSONEq(`{"Yes":0,"No":0}`, rec.Body.String())
	rec = do(t, router, http.MethodGet, "/stats/E1", "")
	req.JSONEq(`{"Yes":0,"No":0}`, rec.Body.String())
}

func Test_Router_Events(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	var events []eventResponse
	rec := do(t, router, http.MethodGet, "/events", "")
	req.Equal(http.StatusOK, rec.Code)
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &events))
	req.Len(events, 2)
	req.Equal("E0", events[0].EventID)

	rec = do(t, router, http.MethodGet, "/event/E1", "")
	req.Equal(http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/event/nope", "")
	req.Equal(http.StatusNotFound, rec.Code)
	req.Equal(msgEventNotFound, decodeMessage(t, rec).Message)
}

func Test_Router_Unknown_Route_And_Preflight(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/nowhere", "")
	req.Equal(http.StatusNotFound, rec.Code)
	req.Equal(msgRouteNotFound, decodeMessage(t, rec).Message)

	rec = do(t, router, http.MethodOptions, "/rsvp", "")
	req.Equal(http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/health", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), `"status":"ok"`)
}
