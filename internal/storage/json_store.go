package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/MolchanovArt/exocortex/internal/models"
)

type Store struct {
	Version int                             `json:"version"`
	Items   map[string]models.Item          `json:"items"`
	Events  map[string]models.CalendarEvent `json:"events"`
}

// JSONStore keeps the whole action list and event log in a single JSON file.
// It is the zero-infrastructure backend for trying things out; the SQL
// backends are the ones meant for daily use.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Items:   make(map[string]models.Item),
		Events:  make(map[string]models.CalendarEvent),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'exocortex init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Items == nil {
		s.store.Items = make(map[string]models.Item)
	}
	if s.store.Events == nil {
		s.store.Events = make(map[string]models.CalendarEvent)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddItem(item models.Item) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Items[item.ID] = item
	return s.save()
}

func (s *JSONStore) GetItem(id string) (models.Item, error) {
	if s.store == nil {
		return models.Item{}, fmt.Errorf("storage not loaded")
	}

	item, ok := s.store.Items[id]
	if !ok || item.DeletedAt != nil {
		return models.Item{}, fmt.Errorf("item with id %s not found", id)
	}
	return item, nil
}

func (s *JSONStore) GetAllItems() ([]models.Item, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var items []models.Item
	for _, item := range s.store.Items {
		if item.DeletedAt != nil {
			continue
		}
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (s *JSONStore) GetUnplannedTasks() ([]models.Item, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var items []models.Item
	for _, item := range s.store.Items {
		if item.DeletedAt != nil || item.Type != models.ItemTypeTask || item.Status != models.ItemStatusNew {
			continue
		}
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (s *JSONStore) UpdateItem(item models.Item) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Items[item.ID]; !ok {
		return fmt.Errorf("item with id %s not found", item.ID)
	}

	s.store.Items[item.ID] = item
	return s.save()
}

func (s *JSONStore) DeleteItem(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	item, ok := s.store.Items[id]
	if !ok {
		return fmt.Errorf("item with id %s not found", id)
	}
	if item.DeletedAt != nil {
		return fmt.Errorf("item with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	item.DeletedAt = &now
	s.store.Items[id] = item
	return s.save()
}

func (s *JSONStore) AddEvent(event models.CalendarEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) GetEvent(id string) (models.CalendarEvent, error) {
	if s.store == nil {
		return models.CalendarEvent{}, fmt.Errorf("storage not loaded")
	}

	event, ok := s.store.Events[id]
	if !ok || event.DeletedAt != nil {
		return models.CalendarEvent{}, fmt.Errorf("event with id %s not found", id)
	}
	return event, nil
}

func (s *JSONStore) GetEventsInRange(start, end time.Time) ([]models.CalendarEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var events []models.CalendarEvent
	for _, event := range s.store.Events {
		if event.DeletedAt != nil {
			continue
		}
		if Intersects(EventBusyInterval(event), start, end) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (s *JSONStore) DeleteEvent(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	event, ok := s.store.Events[id]
	if !ok {
		return fmt.Errorf("event with id %s not found", id)
	}
	if event.DeletedAt != nil {
		return fmt.Errorf("event with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	event.DeletedAt = &now
	s.store.Events[id] = event
	return s.save()
}

func (s *JSONStore) FetchBusyItems(windowStart, windowEnd time.Time) ([]models.BusyInterval, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var busy []models.BusyInterval
	for _, event := range s.store.Events {
		if event.DeletedAt != nil {
			continue
		}
		if iv := EventBusyInterval(event); Intersects(iv, windowStart, windowEnd) {
			busy = append(busy, iv)
		}
	}
	for _, item := range s.store.Items {
		if item.DeletedAt != nil {
			continue
		}
		iv, ok := ItemBusyInterval(item)
		if ok && Intersects(iv, windowStart, windowEnd) {
			busy = append(busy, iv)
		}
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// sortItems orders newest first so fresh captures surface at the top.
func sortItems(items []models.Item) {
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
}
