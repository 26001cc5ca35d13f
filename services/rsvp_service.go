package services

import (
	"context"
	"log/slog"
	"rsvp-lab/clock"
	"rsvp-lab/domain"
	"rsvp-lab/errors"
	"rsvp-lab/infrastructure/storage"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RecordCommand is the strict input of an RSVP. Every field is required and
// Response must be one of the enumerated values.
type RecordCommand struct {
	EventID  string `validate:"required"`
	FullName string `validate:"required"`
	Email    string `validate:"required"`
	Response string `validate:"required,oneof=Yes No"`
}

type IRSVPService interface {
	Record(ctx context.Context, cmd RecordCommand) error
	GetStats(ctx context.Context, eventID string) (domain.Stats, error)
	ListAttendees(ctx context.Context, eventID string, responseFilter string) ([]domain.RespondentEntry, error)
}

type RSVPService struct {
	repository   storage.IRSVPRepository
	clock        clock.Clock
	log          *slog.Logger
	storeTimeout time.Duration
}

func NewRSVPService(repository storage.IRSVPRepository, clock clock.Clock, log *slog.Logger, storeTimeout time.Duration) IRSVPService {
	return &RSVPService{
		repository:   repository,
		clock:        clock,
		log:          log,
		storeTimeout: storeTimeout,
	}
}

// Record stores the RSVP of a respondent exactly once.
// It returns a ValidationError before touching the store, ErrDuplicateRsvp when
// the respondent already answered, and a StoreError on infrastructure failure.
// Store failures are returned unlogged, the transport logs them once.
func (s *RSVPService) Record(ctx context.Context, cmd RecordCommand) error {
	if err := ValidateRecord(cmd); err != nil {
		s.log.Debug("RSVP rejected", "event_id", cmd.EventID, "err", err)
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	entry := domain.RespondentEntry{
		EventID:    cmd.EventID,
		FullName:   cmd.FullName,
		Email:      cmd.Email,
		Response:   domain.Response(cmd.Response),
		RecordedAt: s.clock.Now(),
	}
	outcome, err := s.repository.RecordRSVP(ctx, entry)
	if err != nil {
		return err
	}
	if outcome == storage.TxnPreconditionFailed {
		s.log.Debug("Duplicate RSVP", "event_id", cmd.EventID)
		return errors.ErrDuplicateRsvp
	}
	s.log.Info("RSVP recorded", "event_id", cmd.EventID, "response", cmd.Response)
	return nil
}

// GetStats returns both counters of an event, zero when nobody answered yet.
func (s *RSVPService) GetStats(ctx context.Context, eventID string) (domain.Stats, error) {
	if eventID == "" {
		return domain.Stats{}, &errors.ValidationError{Missing: []string{"event_id"}}
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	counts, err := s.repository.GetCounts(ctx, eventID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.StatsFromCounts(counts), nil
}

// ListAttendees returns the ledger of an event, restricted to one response
// when responseFilter is not empty. No ordering is guaranteed.
func (s *RSVPService) ListAttendees(ctx context.Context, eventID string, responseFilter string) ([]domain.RespondentEntry, error) {
	if eventID == "" {
		return nil, &errors.ValidationError{Missing: []string{"event_id"}}
	}
	var filter *domain.Response
	if responseFilter != "" {
		response := domain.Response(responseFilter)
		if !response.IsValid() {
			return nil, &errors.ValidationError{Invalid: []string{"response"}}
		}
		filter = lo.ToPtr(response)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.repository.ListRespondents(ctx, eventID, filter)
}

func (s *RSVPService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// ValidateRecord checks a RecordCommand and reports every missing or invalid
// field at once.
func ValidateRecord(cmd RecordCommand) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &errors.ValidationError{Invalid: []string{err.Error()}}
	}
	validationErr := &errors.ValidationError{}
	for _, fieldErr := range fieldErrors {
		name := jsonNames[fieldErr.Field()]
		if fieldErr.Tag() == "required" {
			validationErr.Missing = append(validationErr.Missing, name)
		} else {
			validationErr.Invalid = append(validationErr.Invalid, name)
		}
	}
	return validationErr
}

var jsonNames = map[string]string{
	"EventID":  "event_id",
	"FullName": "full_name",
	"Email":    "email",
	"Response": "response",
}
