package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pulseboard/backend/internal/models"
)

// BuildExplanationPrompt constructs the instruction given to the model
// explainer. It is a pure function of the summary: the same summary always
// yields the same prompt. The model is asked to cover the same five facts
// the deterministic explainer reports.
func BuildExplanationPrompt(m *models.UserMetrics) string {
	dates := sortedDays(m)
	dateRange := "N/A"
	if len(dates) > 0 {
		dateRange = fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])
	}

	avgPerDay := dailyAverage(m)

	types := typeBreakdown(m)
	breakdown := make([]string, len(types))
	for i, tc := range types {
		breakdown[i] = fmt.Sprintf("%d %s", tc.Count, tc.Type)
	}

	return fmt.Sprintf(`Write a 2-3 sentence analysis of this user's activity. You must mention: total events, event type breakdown, total value, average value, and activity pattern.

User %s: %d events consisting of %s. Total value: $%s, average value: $%s per event. Active from %s (%.1f events/day average).

Describe activity level (high/moderate/low based on event count), which event types dominate, what the total and average values indicate, and the activity pattern. Only use the data provided, no assumptions.`,
		m.UserID,
		m.TotalEvents,
		strings.Join(breakdown, ", "),
		formatAmount(m.TotalValue),
		formatAmount(m.AvgValue),
		dateRange,
		avgPerDay)
}

// formatAmount renders a value without trailing zeros (145.8, not 145.80)
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
