package models

import "time"

// BusyInterval is a span of already-occupied time, derived from a calendar
// event or an already-planned task. It carries no payload beyond the span
// itself; overlapping intervals are resolved by the consumer.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}
