package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pulseboard/backend/internal/models"
)

type sqliteEventRepository struct {
	db *sql.DB
}

// NewEventRepository creates an EventRepository backed by the given database
func NewEventRepository(db *sql.DB) EventRepository {
	return &sqliteEventRepository{db: db}
}

func (r *sqliteEventRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT user_id FROM events ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("listing user ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	userIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func (r *sqliteEventRepository) GetByUserID(ctx context.Context, userID string) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT event_id, user_id, event_type, timestamp, value FROM events WHERE user_id = ? ORDER BY timestamp",
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying events for user %s: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	events := []models.Event{}
	for rows.Next() {
		var (
			e     models.Event
			ts    string
			value sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventType, &ts, &value); err != nil {
			return nil, err
		}

		e.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("stored timestamp %q is not RFC3339: %w", ts, err)
		}
		if value.Valid {
			v := value.Float64
			e.Value = &v
		}

		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *sqliteEventRepository) Insert(ctx context.Context, event *models.Event) error {
	value := sql.NullFloat64{}
	if event.Value != nil {
		value = sql.NullFloat64{Float64: *event.Value, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO events (event_id, user_id, event_type, timestamp, value) VALUES (?, ?, ?, ?, ?)",
		event.ID, event.UserID, event.EventType, event.Timestamp.Format(time.RFC3339), value)
	if err != nil {
		return fmt.Errorf("inserting event %s: %w", event.ID, err)
	}
	return nil
}
