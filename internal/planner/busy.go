package planner

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/errors"
	"github.com/MolchanovArt/exocortex/internal/logger"
	"github.com/MolchanovArt/exocortex/internal/models"
)

// BusySource is the read-only contract the engine needs from the persisted
// store: all calendar events and planned tasks whose time range intersects
// the given window, as raw busy intervals. Overlap resolution happens in the
// availability pass, not here.
type BusySource interface {
	FetchBusyItems(windowStart, windowEnd time.Time) ([]models.BusyInterval, error)
}

// collectBusy performs the single store read of a suggestion request. Any
// store failure aborts the request as a RetrievalError; there are no partial
// results.
func collectBusy(src BusySource, windowStart, windowEnd time.Time) ([]Interval, error) {
	items, err := src.FetchBusyItems(windowStart, windowEnd)
	if err != nil {
		return nil, errors.Retrieval("fetch busy items", err)
	}

	intervals := make([]Interval, 0, len(items))
	for _, item := range items {
		iv := Interval{Start: item.Start, End: item.End}
		if iv.Empty() {
			continue
		}
		intervals = append(intervals, iv)
	}

	logger.Debug("Collected busy intervals", "count", len(intervals),
		"window_start", windowStart, "window_end", windowEnd)
	return intervals, nil
}
