package models

import "time"

type ItemType string

const (
	ItemTypeTask ItemType = "task"
	ItemTypeIdea ItemType = "idea"
	ItemTypeNote ItemType = "note"
)

type ItemStatus string

const (
	ItemStatusNew        ItemStatus = "new"
	ItemStatusPlanned    ItemStatus = "planned"
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusDone       ItemStatus = "done"
	ItemStatusDropped    ItemStatus = "dropped"
)

// Item is a single entry on the action list: a task, idea or note distilled
// from an ingested stream. Tasks may carry planned start/end timestamps once
// the user has committed them to a slot.
type Item struct {
	ID           string     `json:"id"`
	Type         ItemType   `json:"type"`
	Summary      string     `json:"summary"`
	Status       ItemStatus `json:"status"`
	Source       string     `json:"source,omitempty"` // e.g. "telegram", "manual"
	CreatedAt    time.Time  `json:"created_at"`
	PlannedStart *time.Time `json:"planned_start,omitempty"`
	PlannedEnd   *time.Time `json:"planned_end,omitempty"`
	DeletedAt    *string    `json:"deleted_at,omitempty"` // RFC3339 timestamp
}
