package service

import (
	"context"
	"fmt"
	"math"

	"github.com/pulseboard/backend/internal/models"
	"github.com/pulseboard/backend/internal/repository"
)

type metricsService struct {
	eventRepo repository.EventRepository
}

// NewMetricsService creates a new metrics service
func NewMetricsService(eventRepo repository.EventRepository) MetricsService {
	return &metricsService{
		eventRepo: eventRepo,
	}
}

func (s *metricsService) ListUsers(ctx context.Context) ([]string, error) {
	userIDs, err := s.eventRepo.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return userIDs, nil
}

func (s *metricsService) GetUserMetrics(ctx context.Context, userID string) (*models.UserMetrics, error) {
	events, err := s.eventRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for user %s: %w", userID, err)
	}

	// No events means the user is unknown, not an error
	return Summarize(userID, events), nil
}

// Summarize reduces the full event set of one user to a metrics summary.
// Pure function: same events, same summary. Returns nil for an empty set.
//
// TotalValue sums the values of events that carry one; AvgValue divides the
// unrounded sum by the count of those events (0 when there are none). Both
// are rounded to two decimal places. EventsPerDay is keyed by the calendar
// date of each event's timestamp; days without events never appear.
func Summarize(userID string, events []models.Event) *models.UserMetrics {
	if len(events) == 0 {
		return nil
	}

	perType := make(map[string]int)
	perDay := make(map[string]int)
	var totalValue float64
	valued := 0

	for i := range events {
		e := &events[i]
		perType[e.EventType]++
		perDay[e.Day()]++
		if e.HasValue() {
			totalValue += *e.Value
			valued++
		}
	}

	avgValue := 0.0
	if valued > 0 {
		avgValue = totalValue / float64(valued)
	}

	return &models.UserMetrics{
		UserID:        userID,
		TotalEvents:   len(events),
		EventsPerType: perType,
		TotalValue:    round2(totalValue),
		AvgValue:      round2(avgValue),
		EventsPerDay:  perDay,
	}
}

// round2 rounds to two decimal places, halves away from zero
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
