package repository

import (
	"context"

	"github.com/pulseboard/backend/internal/models"
)

// EventRepository defines the interface for event data access
type EventRepository interface {
	// ListUserIDs returns the distinct user IDs present in the event log,
	// sorted ascending.
	ListUserIDs(ctx context.Context) ([]string, error)
	// GetByUserID returns all events for one user. An unknown user yields
	// an empty slice, not an error.
	GetByUserID(ctx context.Context, userID string) ([]models.Event, error)
	// Insert stores one event.
	Insert(ctx context.Context, event *models.Event) error
}
