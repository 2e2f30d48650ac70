package service

import (
	"context"

	"github.com/pulseboard/backend/internal/models"
)

// MetricsService defines the interface for per-user metrics computation
type MetricsService interface {
	// ListUsers returns the distinct user IDs present in the event log.
	ListUsers(ctx context.Context) ([]string, error)
	// GetUserMetrics computes the metrics summary for one user.
	// Returns (nil, nil) when the user has no events; callers must treat
	// that as not found, not as an error.
	GetUserMetrics(ctx context.Context, userID string) (*models.UserMetrics, error)
}

// EventService defines the interface for event ingestion
type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
}

// TextExplainer turns a metrics summary into a short natural-language
/// explanation. Two implementations exist: the rule-based
// DeterministicExplainer, which is always available, and the
// ModelExplainer, which calls a local model and may be unavailable.
type TextExplainer interface {
	// Available reports whether this explainer can currently serve requests
	Available() bool
	// Explain generates the explanation text for a summary
	Explain(ctx context.Context, metrics *models.UserMetrics) (string, error)
}
