package models

import "time"

// Event represents one row of the event log: a timestamped, categorized
// occurrence for one user with an optional numeric value.
type Event struct {
	ID        string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Value     *float64  `json:"value,omitempty"`
}

// HasValue reports whether the event carries a numeric value.
func (e *Event) HasValue() bool {
	return e.Value != nil
}

// Day returns the calendar date of the event in YYYY-MM-DD form.
func (e *Event) Day() string {
	return e.Timestamp.Format("2006-01-02")
}

// UserMetrics is the per-user summary computed from the full event set of
// one user. It is computed fresh per request and never cached.
//
// Invariants for any summary produced from a non-empty event set:
// the per-type counts and per-day counts each sum to TotalEvents, and
// AvgValue is 0 when no event carries a value.
type UserMetrics struct {
	UserID        string         `json:"user_id"`
	TotalEvents   int            `json:"total_events"`
	EventsPerType map[string]int `json:"events_per_type"`
	TotalValue    float64        `json:"total_value"`
	AvgValue      float64        `json:"avg_value"`
	EventsPerDay  map[string]int `json:"events_per_day"`
}

// UsersResponse is the response for the user listing endpoint
type UsersResponse struct {
	UserIDs []string `json:"user_ids"`
}

// ExplanationResponse wraps the generated explanation text
type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}

// RawCreateEventRequest accepts loosely-typed input for event ingestion so
// validation errors can be aggregated instead of failing on first bind error
type RawCreateEventRequest struct {
	EventID   string        `json:"event_id"`
	UserID    string        `json:"user_id"`
	EventType string        `json:"event_type"`
	Timestamp string        `json:"timestamp"`
	Value     NullableFloat `json:"value"`
}
