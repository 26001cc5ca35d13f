package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"rsvp-lab/domain"
	"rsvp-lab/errors"
	"rsvp-lab/services"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type stubRSVPService struct {
	recordErr   error
	recorded    []services.RecordCommand
	stats       domain.Stats
	statsErr    error
	attendees   []domain.RespondentEntry
	attendeeErr error
	lastFilter  string
}

func (s *stubRSVPService) Record(_ context.Context, cmd services.RecordCommand) error {
	s.recorded = append(s.recorded, cmd)
	return s.recordErr
}

func (s *stubRSVPService) GetStats(_ context.Context, _ string) (domain.Stats, error) {
	return s.stats, s.statsErr
}

func (s *stubRSVPService) ListAttendees(_ context.Context, _ string, filter string) ([]domain.RespondentEntry, error) {
	s.lastFilter = filter
	return s.attendees, s.attendeeErr
}

func testErrorWriter() *ErrorWriter {
	return NewErrorWriter(logs.GetLoggerFromLevel(slog.LevelDebug))
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) messageResponse {
	t.Helper()
	var resp messageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleRecordRSVP(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
		wantMsg    string
		wantCalls  int
	}{
		{
			name:       "recorded",
			body:       `{"event_id":"E1","full_name":"Alice","email":"a@x.com","response":"Yes"}`,
			wantStatus: http.StatusOK,
			wantMsg:    msgRecorded,
			wantCalls:  1,
		},
		{
			name:       "duplicate",
			body:       `{"event_id":"E1","full_name":"Alice","email":"a@x.com","response":"No"}`,
			serviceErr: errors.ErrDuplicateRsvp,
			wantStatus: http.StatusConflict,
			wantCode:   codeDuplicateRsvp,
			wantMsg:    msgDuplicateRsvp,
			wantCalls:  1,
		},
		{
			name:       "missing fields",
			body:       `{"event_id":"E2","email":"a@x.com","response":"Yes"}`,
			serviceErr: &errors.ValidationError{Missing: []string{"full_name"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   codeValidation,
			wantMsg:    msgMissingFields,
			wantCalls:  1,
		},
		{
			name:       "invalid response",
			body:       `{"event_id":"E1","full_name":"Carl","email":"c@x.com","response":"Maybe"}`,
			serviceErr: &errors.ValidationError{Invalid: []string{"response"}},
			wantStatus: http.StatusBadRequest,
			wantCode:   codeValidation,
			wantMsg:    msgInvalidResponse,
			wantCalls:  1,
		},
		{
			name:       "store failure does not leak the cause",
			body:       `{"event_id":"E1","full_name":"Dan","email":"d@x.com","response":"Yes"}`,
			serviceErr: errors.NewStoreError("record rsvp", fmt.Errorf("EVENT#E1 value log corrupted")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   codeInternalError,
			wantMsg:    msgInternalError,
			wantCalls:  1,
		},
		{
			name:       "unknown field",
			body:       `{"event_id":"E1","full_name":"Eve","email":"e@x.com","response":"Yes","plus_ones":2}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   codeInvalidBody,
			wantMsg:    msgInvalidBody,
		},
		{
			name:       "wrong type",
			body:       `{"event_id":1,"full_name":"Eve","email":"e@x.com","response":"Yes"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   codeInvalidBody,
			wantMsg:    msgInvalidBody,
		},
		{
			name:       "not json",
			body:       `event_id=E1`,
			wantStatus: http.StatusBadRequest,
			wantCode:   codeInvalidBody,
			wantMsg:    msgInvalidBody,
		},
		{
			name:       "trailing document",
			body:       `{"event_id":"E1"}{"event_id":"E2"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   codeInvalidBody,
			wantMsg:    msgInvalidBody,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			svc := &stubRSVPService{recordErr: tc.serviceErr}
			handler := HandleRecordRSVP(svc, testErrorWriter())

			r := httptest.NewRequest(http.MethodPost, "/rsvp", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			req.Equal(tc.wantStatus, rec.Code)
			req.Equal("application/json", rec.Header().Get("Content-Type"))
			resp := decodeMessage(t, rec)
			req.Equal(tc.wantCode, resp.Code)
			req.Equal(tc.wantMsg, resp.Message)
			req.Len(svc.recorded, tc.wantCalls)
			req.NotContains(rec.Body.String(), "corrupted")
		})
	}
}

func TestHandleGetStats(t *testing.T) {
	req := require.New(t)
	svc := &stubRSVPService{stats: domain.Stats{Yes: 1}}
	mux := http.NewServeMux()
	mux.Handle("GET /stats/{event_id}", HandleGetStats(svc, testErrorWriter()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats/E1", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"Yes":1,"No":0}`, rec.Body.String())
}

func TestHandleGetStats_Store_Error(t *testing.T) {
	req := require.New(t)
	svc := &stubRSVPService{statsErr: errors.NewStoreError("get counts", context.DeadlineExceeded)}
	mux := http.NewServeMux()
	mux.Handle("GET /stats/{event_id}", HandleGetStats(svc, testErrorWriter()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats/E1", nil))

	req.Equal(http.StatusInternalServerError, rec.Code)
	req.Equal(codeInternalError, decodeMessage(t, rec).Code)
}

func TestHandleListAttendees(t *testing.T) {
	req := require.New(t)
	at := time.Date(2025, 11, 7, 10, 30, 0, 0, time.UTC)
	svc := &stubRSVPService{attendees: []domain.RespondentEntry{
		{EventID: "E1", FullName: "Bob", Email: "b@x.com", Response: domain.ResponseNo, RecordedAt: at},
	}}
	mux := http.NewServeMux()
	mux.Handle("GET /attendees/{event_id}", HandleListAttendees(svc, testErrorWriter()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendees/E1?response=No", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.Equal("No", svc.lastFilter)
	req.JSONEq(fmt.Sprintf(`[{"full_name":"Bob","email":"b@x.com","response":"No","timestamp":%d}]`, at.UnixMilli()),
		rec.Body.String())
}

func TestHandleListAttendees_Empty_Is_An_Array(t *testing.T) {
	req := require.New(t)
	svc := &stubRSVPService{attendees: []domain.RespondentEntry{}}
	mux := http.NewServeMux()
	mux.Handle("GET /attendees/{event_id}", HandleListAttendees(svc, testErrorWriter()))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendees/E1", nil))

	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`[]`, rec.Body.String())
}

func TestErrorWriter_Logs_A_Store_Failure_Once(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	errs := NewErrorWriter(slog.New(slog.NewTextHandler(&buf, nil)))
	svc := &stubRSVPService{recordErr: errors.NewStoreError("record rsvp", fmt.Errorf("disk full"))}

	rec := httptest.NewRecorder()
	body := `{"event_id":"E1","full_name":"Alice","email":"a@x.com","response":"Yes"}`
	HandleRecordRSVP(svc, errs).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rsvp", strings.NewReader(body)))

	req.Equal(http.StatusInternalServerError, rec.Code)
	req.Equal(1, strings.Count(buf.String(), "level=ERROR"))
	req.Contains(buf.String(), "disk full")
}
