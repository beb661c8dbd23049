// Package planner computes ranked free time-slot suggestions from a user's
// availability preferences and existing commitments. The engine is a pure
// function of its inputs: it reads busy intervals once per request, retains
// no state between calls, and identical inputs produce identical output.
package planner

import (
	"sort"
	"time"

	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/profile"
)

// SuggestedSlot is a candidate time window for scheduling a new task. Slots
// are ephemeral: they are built fresh for each request and never persisted by
// the engine itself.
type SuggestedSlot struct {
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Reason string              `json:"reason"`
	Energy profile.EnergyLevel `json:"energy_level,omitempty"`
}

// Request describes a single suggestion run. Zero values take defaults:
// Now defaults to the current time, DurationMin to the preference default,
// DaysAhead and MaxSuggestions to the application defaults.
type Request struct {
	Now            time.Time
	DaysAhead      int
	DurationMin    int
	MaxSuggestions int
	// Tile emits every non-overlapping slot a free sub-interval can hold
	// instead of the default single candidate at its start.
	Tile bool
}

// Engine suggests free slots for one user. It holds only immutable inputs
// and a read-only busy source, so a single instance is safe to reuse.
type Engine struct {
	prefs  profile.Preferences
	energy []profile.EnergyEntry
	source BusySource
}

// New creates an engine over fully-defaulted preferences, an energy profile
// and a busy-interval source.
func New(prefs profile.Preferences, energy []profile.EnergyEntry, source BusySource) *Engine {
	return &Engine{prefs: prefs, energy: energy, source: source}
}

// Suggest returns the ranked candidate slots for the request window. An empty
// result is a valid outcome, not an error; the only failure modes are a
// configuration problem upstream or a failed busy-interval read.
func (e *Engine) Suggest(req Request) ([]SuggestedSlot, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(e.prefs.Location)

	daysAhead := req.DaysAhead
	if daysAhead <= 0 {
		daysAhead = constants.DefaultLookaheadDays
	}
	durationMin := req.DurationMin
	if durationMin <= 0 {
		durationMin = e.prefs.DefaultTaskDurationMin
	}
	maxSuggestions := req.MaxSuggestions
	if maxSuggestions <= 0 {
		maxSuggestions = constants.DefaultMaxSuggestions
	}

	windowEnd := time.Date(now.Year(), now.Month(), now.Day()+daysAhead, 0, 0, 0, 0, e.prefs.Location)
	busy, err := collectBusy(e.source, now, windowEnd)
	if err != nil {
		return nil, err
	}

	days := e.availability(now, daysAhead, busy)
	return e.rank(days, durationMin, maxSuggestions, req.Tile), nil
}

// rank slices free sub-intervals into fixed-duration candidates, caps each
// day at max_focus_blocks_per_day keeping that day's best, orders the full
// set by energy then start time, and truncates to the requested maximum.
func (e *Engine) rank(days []dayAvailability, durationMin, maxSuggestions int, tile bool) []SuggestedSlot {
	duration := time.Duration(durationMin) * time.Minute

	slots := make([]SuggestedSlot, 0, len(days)*e.prefs.MaxFocusBlocksPerDay)
	for _, d := range days {
		var candidates []SuggestedSlot
		for _, iv := range d.free {
			start := iv.Start
			for !iv.End.Before(start.Add(duration)) {
				candidates = append(candidates, e.newSlot(start, duration))
				if !tile {
					break
				}
				start = start.Add(duration)
			}
		}
		sortSlots(candidates)
		if len(candidates) > e.prefs.MaxFocusBlocksPerDay {
			candidates = candidates[:e.prefs.MaxFocusBlocksPerDay]
		}
		slots = append(slots, candidates...)
	}

	sortSlots(slots)
	if len(slots) > maxSuggestions {
		slots = slots[:maxSuggestions]
	}
	return slots
}

// newSlot builds a candidate anchored at start, tagging it with the energy
// profile entry covering that wall-clock time, if any.
func (e *Engine) newSlot(start time.Time, duration time.Duration) SuggestedSlot {
	slot := SuggestedSlot{
		Start:  start,
		End:    start.Add(duration),
		Reason: "free",
		Energy: profile.EnergyNone,
	}
	if entry := profile.EnergyAt(e.energy, clockOf(start)); entry != nil {
		slot.Energy = entry.Level
		if entry.Label != "" {
			slot.Reason = entry.Label
		} else {
			slot.Reason = string(entry.Level)
		}
	}
	return slot
}

// sortSlots orders by energy level (high, medium, low, untagged), then by
// start time ascending. The sort is stable so equal slots keep their
// discovery order and repeated runs are byte-for-byte identical.
func sortSlots(slots []SuggestedSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Energy.Rank() != slots[j].Energy.Rank() {
			return slots[i].Energy.Rank() < slots[j].Energy.Rank()
		}
		return slots[i].Start.Before(slots[j].Start)
	})
}

func clockOf(t time.Time) profile.Clock {
	return profile.Clock(t.Hour()*60 + t.Minute())
}
