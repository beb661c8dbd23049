package storage

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// EventBusyInterval converts a calendar event to its busy interval. An event
// without an end time occupies the default busy duration.
func EventBusyInterval(ev models.CalendarEvent) models.BusyInterval {
	end := ev.StartTime.Add(time.Duration(constants.DefaultBusyDurationMin) * time.Minute)
	if ev.EndTime != nil {
		end = *ev.EndTime
	}
	return models.BusyInterval{Start: ev.StartTime, End: end}
}

// ItemBusyInterval converts a planned item to its busy interval. Only items
// in a planned or in-progress state with a planned start occupy time; the
// second return value reports whether the item is busy at all.
func ItemBusyInterval(item models.Item) (models.BusyInterval, bool) {
	if item.PlannedStart == nil {
		return models.BusyInterval{}, false
	}
	if item.Status != models.ItemStatusPlanned && item.Status != models.ItemStatusInProgress {
		return models.BusyInterval{}, false
	}
	end := item.PlannedStart.Add(time.Duration(constants.DefaultBusyDurationMin) * time.Minute)
	if item.PlannedEnd != nil {
		end = *item.PlannedEnd
	}
	return models.BusyInterval{Start: *item.PlannedStart, End: end}, true
}

// Intersects reports whether the interval overlaps the half-open window.
func Intersects(iv models.BusyInterval, windowStart, windowEnd time.Time) bool {
	return iv.Start.Before(windowEnd) && iv.End.After(windowStart)
}
