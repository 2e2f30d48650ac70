package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pulseboard/backend/internal/logger"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test csv: %v", err)
	}
	return path
}

func TestSeedFromCSV(t *testing.T) {
	csvData := `event_id,user_id,event_type,timestamp,value
e1,user1,click,2024-01-01T10:00:00Z,10.5
e2,user1,view,2024-01-02 09:30:00,
e3,user2,purchase,2024-01-01,99.99
`
	repo := NewEventRepository(openTestDB(t))
	ctx := context.Background()

	loaded, skipped, err := SeedFromCSV(ctx, repo, writeCSV(t, csvData), logger.Default())
	if err != nil {
		t.Fatalf("SeedFromCSV error: %v", err)
	}
	if loaded != 3 || skipped != 0 {
		t.Errorf("loaded=%d skipped=%d, want 3/0", loaded, skipped)
	}

	events, err := repo.GetByUserID(ctx, "user1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events for user1, want 2", len(events))
	}
	if events[0].Value == nil || *events[0].Value != 10.5 {
		t.Errorf("e1 value = %v, want 10.5", events[0].Value)
	}
	if events[1].Value != nil {
		t.Errorf("e2 value = %v, want nil for empty field", events[1].Value)
	}

	// Date-only timestamps resolve to midnight
	dayOnly, err := repo.GetByUserID(ctx, "user2")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if got := dayOnly[0].Day(); got != "2024-01-01" {
		t.Errorf("day-only event Day() = %q, want 2024-01-01", got)
	}
}

func TestSeedFromCSVSkipsMalformedRows(t *testing.T) {
	csvData := `event_id,user_id,event_type,timestamp,value
e1,user1,click,2024-01-01T10:00:00Z,10.5
e2,user1,view,not-a-timestamp,5.0
e3,,click,2024-01-01T11:00:00Z,1.0
e4,user1,click,2024-01-03T08:00:00Z,oops
`
	repo := NewEventRepository(openTestDB(t))
	ctx := context.Background()

	loaded, skipped, err := SeedFromCSV(ctx, repo, writeCSV(t, csvData), logger.Default())
	if err != nil {
		t.Fatalf("SeedFromCSV error: %v", err)
	}

	// e2 (bad timestamp) and e3 (no user) are dropped; e4 loads with no value
	if loaded != 2 {
		t.Errorf("loaded = %d, want 2", loaded)
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}

	events, err := repo.GetByUserID(ctx, "user1")
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, e := range events {
		if e.ID == "e4" && e.Value != nil {
			t.Errorf("e4 value = %v, want nil for unparseable value", e.Value)
		}
	}
}

func TestSeedFromCSVGeneratesMissingEventIDs(t *testing.T) {
	csvData := `event_id,user_id,event_type,timestamp,value
,user1,click,2024-01-01T10:00:00Z,
,user1,click,2024-01-01T11:00:00Z,
`
	repo := NewEventRepository(openTestDB(t))
	ctx := context.Background()

	loaded, _, err := SeedFromCSV(ctx, repo, writeCSV(t, csvData), logger.Default())
	if err != nil {
		t.Fatalf("SeedFromCSV error: %v", err)
	}
	if loaded != 2 {
		t.Errorf("loaded = %d, want 2 (generated ids must not collide)", loaded)
	}
}

func TestSeedFromCSVMissingColumn(t *testing.T) {
	csvData := `event_id,user_id,timestamp
e1,user1,2024-01-01T10:00:00Z
`
	repo := NewEventRepository(openTestDB(t))

	if _, _, err := SeedFromCSV(context.Background(), repo, writeCSV(t, csvData), logger.Default()); err == nil {
		t.Fatal("expected error for missing event_type column")
	}
}
