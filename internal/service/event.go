package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	if err := s.eventRepo.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}
