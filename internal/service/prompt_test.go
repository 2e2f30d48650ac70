package service

import (
	"strings"
	"testing"

	"github.com/pulseboard/backend/internal/models"
)

func TestBuildExplanationPrompt(t *testing.T) {
	m := &models.UserMetrics{
		UserID:      "user1",
		TotalEvents: 4,
		EventsPerType: map[string]int{
			"click":    2,
			"view":     1,
			"purchase": 1,
		},
		TotalValue: 145.8,
		AvgValue:   36.45,
		EventsPerDay: map[string]int{
			"2024-01-01": 2,
			"2024-01-02": 2,
		},
	}

	prompt := BuildExplanationPrompt(m)

	wantFragments := []string{
		"Write a 2-3 sentence analysis of this user's activity.",
		"total events, event type breakdown, total value, average value, and activity pattern",
		"User user1: 4 events consisting of 2 click, 1 purchase, 1 view.",
		"Total value: $145.8, average value: $36.45 per event.",
		"Active from 2024-01-01 to 2024-01-02 (2.0 events/day average).",
		"Only use the data provided, no assumptions.",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(prompt, frag) {
			t.Errorf("prompt missing %q\nprompt:\n%s", frag, prompt)
		}
	}
}

func TestBuildExplanationPromptNoDays(t *testing.T) {
	m := &models.UserMetrics{
		UserID:        "user1",
		TotalEvents:   1,
		EventsPerType: map[string]int{"click": 1},
		EventsPerDay:  map[string]int{},
	}

	prompt := BuildExplanationPrompt(m)
	if !strings.Contains(prompt, "Active from N/A") {
		t.Errorf("prompt should report N/A date range, got:\n%s", prompt)
	}
}

func TestBuildExplanationPromptDeterministic(t *testing.T) {
	m := &models.UserMetrics{
		UserID:        "user1",
		TotalEvents:   6,
		EventsPerType: map[string]int{"a": 2, "b": 2, "c": 2},
		TotalValue:    60,
		AvgValue:      10,
		EventsPerDay:  map[string]int{"2024-01-01": 3, "2024-01-02": 3},
	}

	first := BuildExplanationPrompt(m)
	for i := 0; i < 10; i++ {
		if got := BuildExplanationPrompt(m); got != first {
			t.Fatalf("prompt not deterministic:\n%q\nvs\n%q", first, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{145.8, "145.8"},
		{145.0, "145"},
		{36.45, "36.45"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
