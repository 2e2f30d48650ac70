package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pulseboard/backend/internal/models"
)

const (
	// Activity level thresholds (total events)
	HighActivityEvents     = 50
	ModerateActivityEvents = 20

	// Value tier thresholds (average value, exclusive lower bounds)
	HighValueAvg     = 100
	ModerateValueAvg = 50

	// Daily variance thresholds
	ConsistentVarianceMax = 2
	ModerateVarianceMax   = 10
)

// DeterministicExplainer generates explanations from a fixed rule cascade.
// It is always available and produces identical text for identical summaries,
// serving as the fallback when no model is configured or a model call fails.
type DeterministicExplainer struct{}

// NewDeterministicExplainer creates a new rule-based explainer
func NewDeterministicExplainer() *DeterministicExplainer {
	return &DeterministicExplainer{}
}

func (e *DeterministicExplainer) Available() bool {
	return true
}

func (e *DeterministicExplainer) Explain(_ context.Context, m *models.UserMetrics) (string, error) {
	// Determine activity level
	var activityLevel string
	switch {
	case m.TotalEvents >= HighActivityEvents:
		activityLevel = "high"
	case m.TotalEvents >= ModerateActivityEvents:
		activityLevel = "moderate"
	default:
		activityLevel = "low"
	}

	// Find dominant event type
	types := typeBreakdown(m)
	dominant := types[0]
	dominantPercentage := int(math.Round(float64(dominant.Count) / float64(m.TotalEvents) * 100))

	// Analyze value metrics
	var valueAnalysis string
	switch {
	case m.AvgValue > HighValueAvg:
		valueAnalysis = "high-value transactions"
	case m.AvgValue > ModerateValueAvg:
		valueAnalysis = "moderate-value transactions"
	default:
		valueAnalysis = "low-value transactions"
	}

	parts := make([]string, 0, 3)

	// First sentence: activity level and event breakdown
	parts = append(parts, fmt.Sprintf(
		"This user shows %s activity with %d total events consisting of %s, with %s events dominating at %d%% of all activity.",
		activityLevel, m.TotalEvents, breakdownText(types), dominant.Type, dominantPercentage))

	// Second sentence: value analysis
	parts = append(parts, fmt.Sprintf(
		"The user generated $%.2f in total value across all events, averaging $%.2f per event, indicating %s.",
		m.TotalValue, m.AvgValue, valueAnalysis))

	// Third sentence: activity pattern
	dates := sortedDays(m)
	if len(dates) > 0 {
		avgPerDay := dailyAverage(m)

		// Variance is measured against the already-rounded daily average.
		// The slight imprecision is deliberate: it keeps the generated text
		// identical to the long-standing output of this generator.
		var variance float64
		for _, count := range m.EventsPerDay {
			diff := float64(count) - avgPerDay
			variance += diff * diff
		}
		variance /= float64(len(m.EventsPerDay))

		var activityPattern string
		switch {
		case variance < ConsistentVarianceMax:
			activityPattern = "consistent daily activity"
		case variance < ModerateVarianceMax:
			activityPattern = "moderately variable activity"
		default:
			activityPattern = "highly variable activity with irregular patterns"
		}

		parts = append(parts, fmt.Sprintf(
			"Activity spans from %s to %s with an average of %.1f events per day, showing %s.",
			dates[0], dates[len(dates)-1], avgPerDay, activityPattern))
	} else {
		parts = append(parts, "No temporal activity pattern available.")
	}

	return strings.Join(parts, " "), nil
}

// typeCount pairs an event type with its count for ordered reporting
type typeCount struct {
	Type  string
	Count int
}

// typeBreakdown returns per-type counts sorted by descending count.
// Ties break on type name so the ordering is deterministic: Go map
// iteration would otherwise randomize equal-count types between runs.
func typeBreakdown(m *models.UserMetrics) []typeCount {
	types := make([]typeCount, 0, len(m.EventsPerType))
	for t, c := range m.EventsPerType {
		types = append(types, typeCount{Type: t, Count: c})
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].Type < types[j].Type
	})
	return types
}

// breakdownText renders type counts as "2 click, 1 purchase, 1 view"
func breakdownText(types []typeCount) string {
	parts := make([]string, len(types))
	for i, tc := range types {
		parts[i] = fmt.Sprintf("%d %s", tc.Count, tc.Type)
	}
	return strings.Join(parts, ", ")
}

// sortedDays returns the active dates in chronological order.
// Dates are YYYY-MM-DD strings, so lexicographic order is chronological.
func sortedDays(m *models.UserMetrics) []string {
	days := make([]string, 0, len(m.EventsPerDay))
	for d := range m.EventsPerDay {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// dailyAverage returns the mean daily event count rounded to one decimal
// place, halves away from zero. The rounded value is what both the
// explanation text and the variance computation use.
func dailyAverage(m *models.UserMetrics) float64 {
	if len(m.EventsPerDay) == 0 {
		return 0
	}
	sum := 0
	for _, count := range m.EventsPerDay {
		sum += count
	}
	avg := float64(sum) / float64(len(m.EventsPerDay))
	return math.Round(avg*10) / 10
}
