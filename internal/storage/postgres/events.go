package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/storage"
)

const eventColumns = "id, calendar_id, event_id, title, description, start_time, end_time, deleted_at"

func (s *Store) AddEvent(event models.CalendarEvent) error {
	var endTime sql.NullTime
	if event.EndTime != nil {
		endTime = sql.NullTime{Time: *event.EndTime, Valid: true}
	}
	var deletedAt sql.NullString
	if event.DeletedAt != nil {
		deletedAt = sql.NullString{String: *event.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			calendar_id = EXCLUDED.calendar_id,
			event_id = EXCLUDED.event_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			deleted_at = EXCLUDED.deleted_at`,
		event.ID, event.CalendarID, event.EventID, event.Title, event.Description,
		event.StartTime, endTime, deletedAt,
	)
	return err
}

func (s *Store) GetEvent(id string) (models.CalendarEvent, error) {
	row := s.db.QueryRow(
		"SELECT "+eventColumns+" FROM events WHERE id = $1 AND deleted_at IS NULL", id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return models.CalendarEvent{}, fmt.Errorf("event with id %s not found", id)
	}
	return event, err
}

func (s *Store) GetEventsInRange(start, end time.Time) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(
		"SELECT "+eventColumns+" FROM events WHERE deleted_at IS NULL AND start_time < $1 ORDER BY start_time",
		end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		if storage.Intersects(storage.EventBusyInterval(event), start, end) {
			events = append(events, event)
		}
	}
	return events, rows.Err()
}

func scanEvent(row rowScanner) (models.CalendarEvent, error) {
	var event models.CalendarEvent
	var endTime sql.NullTime
	var deletedAt sql.NullString

	err := row.Scan(&event.ID, &event.CalendarID, &event.EventID, &event.Title, &event.Description,
		&event.StartTime, &endTime, &deletedAt)
	if err != nil {
		return models.CalendarEvent{}, err
	}

	if endTime.Valid {
		t := endTime.Time
		event.EndTime = &t
	}
	if deletedAt.Valid {
		event.DeletedAt = &deletedAt.String
	}

	return event, nil
}

func (s *Store) DeleteEvent(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM events WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("event with id %s not found", id)
		}
		return fmt.Errorf("failed to check event existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("event with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE events SET deleted_at = $1 WHERE id = $2", now, id)
	return err
}

// FetchBusyItems unions the busy intervals of calendar events and planned
// tasks intersecting the window.
func (s *Store) FetchBusyItems(windowStart, windowEnd time.Time) ([]models.BusyInterval, error) {
	events, err := s.GetEventsInRange(windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	var busy []models.BusyInterval
	for _, event := range events {
		busy = append(busy, storage.EventBusyInterval(event))
	}

	items, err := s.queryItems(
		"SELECT "+itemColumns+" FROM items WHERE deleted_at IS NULL AND planned_start IS NOT NULL AND status IN ($1, $2) AND planned_start < $3 ORDER BY planned_start",
		string(models.ItemStatusPlanned), string(models.ItemStatusInProgress), windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned items: %w", err)
	}
	for _, item := range items {
		iv, ok := storage.ItemBusyInterval(item)
		if ok && storage.Intersects(iv, windowStart, windowEnd) {
			busy = append(busy, iv)
		}
	}

	return busy, nil
}
