package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

const itemColumns = "id, type, summary, status, source, created_at, planned_start, planned_end, deleted_at"

func (s *Store) AddItem(item models.Item) error {
	return s.UpdateItem(item)
}

func (s *Store) GetItem(id string) (models.Item, error) {
	row := s.db.QueryRow(
		"SELECT "+itemColumns+" FROM items WHERE id = $1 AND deleted_at IS NULL", id)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, fmt.Errorf("item with id %s not found", id)
	}
	return item, err
}

func (s *Store) GetAllItems() ([]models.Item, error) {
	return s.queryItems(
		"SELECT " + itemColumns + " FROM items WHERE deleted_at IS NULL ORDER BY created_at DESC")
}

func (s *Store) GetUnplannedTasks() ([]models.Item, error) {
	return s.queryItems(
		"SELECT "+itemColumns+" FROM items WHERE deleted_at IS NULL AND type = $1 AND status = $2 ORDER BY created_at DESC",
		string(models.ItemTypeTask), string(models.ItemStatusNew))
}

func (s *Store) queryItems(query string, args ...any) ([]models.Item, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item
	var plannedStart, plannedEnd sql.NullTime
	var deletedAt sql.NullString

	err := row.Scan(&item.ID, &item.Type, &item.Summary, &item.Status, &item.Source,
		&item.CreatedAt, &plannedStart, &plannedEnd, &deletedAt)
	if err != nil {
		return models.Item{}, err
	}

	if plannedStart.Valid {
		t := plannedStart.Time
		item.PlannedStart = &t
	}
	if plannedEnd.Valid {
		t := plannedEnd.Time
		item.PlannedEnd = &t
	}
	if deletedAt.Valid {
		item.DeletedAt = &deletedAt.String
	}

	return item, nil
}

func (s *Store) UpdateItem(item models.Item) error {
	var plannedStart, plannedEnd sql.NullTime
	if item.PlannedStart != nil {
		plannedStart = sql.NullTime{Time: *item.PlannedStart, Valid: true}
	}
	if item.PlannedEnd != nil {
		plannedEnd = sql.NullTime{Time: *item.PlannedEnd, Valid: true}
	}
	var deletedAt sql.NullString
	if item.DeletedAt != nil {
		deletedAt = sql.NullString{String: *item.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			summary = EXCLUDED.summary,
			status = EXCLUDED.status,
			source = EXCLUDED.source,
			created_at = EXCLUDED.created_at,
			planned_start = EXCLUDED.planned_start,
			planned_end = EXCLUDED.planned_end,
			deleted_at = EXCLUDED.deleted_at`,
		item.ID, item.Type, item.Summary, item.Status, item.Source,
		item.CreatedAt, plannedStart, plannedEnd, deletedAt,
	)
	return err
}

func (s *Store) DeleteItem(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM items WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("item with id %s not found", id)
		}
		return fmt.Errorf("failed to check item existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("item with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE items SET deleted_at = $1 WHERE id = $2", now, id)
	return err
}
