package services

import (
	"context"
	"log/slog"
	"rsvp-lab/domain"
	"rsvp-lab/errors"
	"rsvp-lab/infrastructure/storage"
)

type IEventService interface {
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type EventService struct {
	repository storage.IEventRepository
	log        *slog.Logger
}

func NewEventService(repository storage.IEventRepository, log *slog.Logger) IEventService {
	return &EventService{repository: repository, log: log}
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	if eventID == "" {
		return domain.Event{}, &errors.ValidationError{Missing: []string{"event_id"}}
	}
	event, err := s.repository.GetEvent(ctx, eventID)
	if errors.Is(err, errors.ErrNotFound) {
		s.log.Debug("Event not found", "event_id", eventID)
	}
	return event, err
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repository.ListEvents(ctx)
}
