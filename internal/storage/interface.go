package storage

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Action-list items
	AddItem(models.Item) error
	GetItem(id string) (models.Item, error)
	GetAllItems() ([]models.Item, error)
	GetUnplannedTasks() ([]models.Item, error)
	UpdateItem(models.Item) error
	DeleteItem(id string) error

	// Calendar events
	AddEvent(models.CalendarEvent) error
	GetEvent(id string) (models.CalendarEvent, error)
	GetEventsInRange(start, end time.Time) ([]models.CalendarEvent, error)
	DeleteEvent(id string) error

	// FetchBusyItems returns the busy intervals of all calendar events and
	// planned tasks intersecting the window. An event or task without an end
	// is assumed to run for the default busy duration.
	FetchBusyItems(windowStart, windowEnd time.Time) ([]models.BusyInterval, error)

	// Utils
	GetConfigPath() string
}
