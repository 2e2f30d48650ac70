package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/models"
)

// timestampLayouts are tried in order when parsing event timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// SeedFromCSV loads the event log at path into the repository. The file must
// have a header row with event_id, user_id, event_type, timestamp and value
// columns (in any order).
//
// Malformed rows are skipped, not fatal: a row with a missing user_id or
// event_type, or an unparseable timestamp, is dropped with a warning. A
// non-empty but unparseable value makes the event count as having no value.
// Returns the number of events loaded and the number of rows skipped.
func SeedFromCSV(ctx context.Context, repo EventRepository, path string, log logger.Logger) (loaded, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening event log: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("parsing event log: %w", err)
	}
	if len(records) == 0 {
		return 0, 0, fmt.Errorf("event log %s is empty", path)
	}

	// Map header names to column positions
	columns := map[string]int{}
	for i, name := range records[0] {
		columns[name] = i
	}
	for _, required := range []string{"user_id", "event_type", "timestamp"} {
		if _, ok := columns[required]; !ok {
			return 0, 0, fmt.Errorf("event log is missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for n, row := range records[1:] {
		line := n + 2 // 1-based, after header

		userID := field(row, "user_id")
		eventType := field(row, "event_type")
		if userID == "" || eventType == "" {
			log.Warn("skipping event with missing user_id or event_type", logger.Int("line", line))
			skipped++
			continue
		}

		ts, err := parseTimestamp(field(row, "timestamp"))
		if err != nil {
			log.Warn("skipping event with bad timestamp",
				logger.Int("line", line),
				logger.Err(err))
			skipped++
			continue
		}

		event := models.Event{
			ID:        field(row, "event_id"),
			UserID:    userID,
			EventType: eventType,
			Timestamp: ts,
		}
		if event.ID == "" {
			event.ID = uuid.New().String()
		}

		if raw := field(row, "value"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				log.Warn("event value is not numeric, treating as no value",
					logger.Int("line", line),
					logger.String("value", raw))
			} else {
				event.Value = &v
			}
		}

		if err := repo.Insert(ctx, &event); err != nil {
			return loaded, skipped, err
		}
		loaded++
	}

	return loaded, skipped, nil
}
