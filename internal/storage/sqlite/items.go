package sqlite

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
		"SELECT "+itemColumns+" FROM items WHERE id = ? AND deleted_at IS NULL", id)

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
		"SELECT "+itemColumns+" FROM items WHERE deleted_at IS NULL AND type = ? AND status = ? ORDER BY created_at DESC",
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
	var createdAt string
	var plannedStart, plannedEnd, deletedAt sql.NullString

	err := row.Scan(&item.ID, &item.Type, &item.Summary, &item.Status, &item.Source,
		&createdAt, &plannedStart, &plannedEnd, &deletedAt)
	if err != nil {
		return models.Item{}, err
	}

	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Item{}, err
	}
	if item.PlannedStart, err = parseTimePtr(plannedStart); err != nil {
		return models.Item{}, err
	}
	if item.PlannedEnd, err = parseTimePtr(plannedEnd); err != nil {
		return models.Item{}, err
	}
	if deletedAt.Valid {
		item.DeletedAt = &deletedAt.String
	}

	return item, nil
}

func (s *Store) UpdateItem(item models.Item) error {
	var deletedAt sql.NullString
	if item.DeletedAt != nil {
		deletedAt = sql.NullString{String: *item.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Type, item.Summary, item.Status, item.Source,
		formatTime(item.CreatedAt), formatTimePtr(item.PlannedStart), formatTimePtr(item.PlannedEnd), deletedAt,
	)
	return err
}

func (s *Store) DeleteItem(id string) error {
	// Soft delete: set deleted_at instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM items WHERE id = ?", id).Scan(&deletedAt)
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
	_, err = s.db.Exec("UPDATE items SET deleted_at = ? WHERE id = ?", now, id)
	return err
}
