package planner

import (
	"time"

	"github.com/MolchanovArt/exocortex/internal/profile"
)

// dayAvailability is one work day's remaining free sub-intervals, disjoint
// and ordered ascending by start.
type dayAvailability struct {
	day  time.Time // midnight in the configured location
	free IntervalSet
}

// availability computes the free sub-intervals of every work day in the
// lookahead window, ascending by date. Each day starts from its nominal work
// window and loses, in order: sleep blocks, soft blocks, busy intervals.
// A fully consumed day simply yields an empty set.
func (e *Engine) availability(now time.Time, daysAhead int, busy []Interval) []dayAvailability {
	local := now.In(e.prefs.Location)

	var days []dayAvailability
	for i := 0; i < daysAhead; i++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+i, 0, 0, 0, 0, e.prefs.Location)
		if !e.prefs.WorkDays[day.Weekday()] {
			continue
		}

		work := Interval{
			Start: e.prefs.WorkHours.Start.At(day),
			End:   e.prefs.WorkHours.End.At(day),
		}

		free := NewIntervalSet(work).
			Subtract(blockIntervals(e.prefs.SleepBlocks, day)).
			Subtract(blockIntervals(e.prefs.SoftBlocks, day)).
			Subtract(busy).
			ClipBefore(now)

		if e.prefs.AvoidAfter != nil {
			free = free.ClipAfter(e.prefs.AvoidAfter.At(day))
		}

		days = append(days, dayAvailability{day: day, free: free})
	}
	return days
}

// blockIntervals anchors wall-clock blocks on the given day. A block that
// wraps past midnight contributes two same-day pieces: its early-morning
// remainder and its late-evening onset.
func blockIntervals(blocks []profile.TimeBlock, day time.Time) []Interval {
	if len(blocks) == 0 {
		return nil
	}
	intervals := make([]Interval, 0, len(blocks))
	for _, b := range blocks {
		if b.Wraps() {
			intervals = append(intervals,
				Interval{Start: day, End: (b.End - profile.MinutesPerDay).At(day)},
				Interval{Start: b.Start.At(day), End: profile.Clock(profile.MinutesPerDay).At(day)},
			)
			continue
		}
		intervals = append(intervals, Interval{Start: b.Start.At(day), End: b.End.At(day)})
	}
	return intervals
}
