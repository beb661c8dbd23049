package models

import "time"

// CalendarEvent is an imported calendar entry. EndTime may be nil for events
// imported without an explicit end; consumers assume a default duration.
type CalendarEvent struct {
	ID          string     `json:"id"`
	CalendarID  string     `json:"calendar_id"`
	EventID     string     `json:"event_id"` // identifier in the source calendar
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	DeletedAt   *string    `json:"deleted_at,omitempty"` // RFC3339 timestamp
}
