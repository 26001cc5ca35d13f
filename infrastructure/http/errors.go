package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"rsvp-lab/errors"
)

const (
	codeValidation    = "VALIDATION_ERROR"
	codeInvalidBody   = "INVALID_BODY"
	codeDuplicateRsvp = "DUPLICATE_RSVP"
	codeNotFound      = "NOT_FOUND"
	codeInternalError = "INTERNAL_ERROR"
)

const (
	msgRecorded        = "RSVP recorded!"
	msgMissingFields   = "Missing fields. Email is required to prevent duplicate RSVPs."
	msgInvalidResponse = "response must be Yes or No"
	msgInvalidBody     = "invalid request body"
	msgDuplicateRsvp   = "You have already RSVP'd for this event with this email!"
	msgEventNotFound   = "Event not found"
	msgRouteNotFound   = "Route not found"
	msgInternalError   = "internal error"
)

type messageResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"message":"internal error","code":"INTERNAL_ERROR"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, messageResponse{Message: msg, Code: code})
}

// ErrorWriter turns service errors into wire responses.
// Expected outcomes keep a precise message, anything else is logged with its
// cause and answered with a generic 500.
type ErrorWriter struct {
	log *slog.Logger
}

func NewErrorWriter(log *slog.Logger) *ErrorWriter {
	return &ErrorWriter{log: log}
}

func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *errors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		msg := msgInvalidResponse
		if len(validationErr.Missing) > 0 {
			msg = msgMissingFields
		}
		writeError(w, http.StatusBadRequest, codeValidation, msg)
	case errors.Is(err, errors.ErrDuplicateRsvp):
		writeError(w, http.StatusConflict, codeDuplicateRsvp, msgDuplicateRsvp)
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, msgEventNotFound)
	default:
		e.log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, msgInternalError)
	}
}
