package planner

import (
	"sort"
	"time"
)

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the span length.
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Empty reports whether the span is empty or inverted.
func (iv Interval) Empty() bool { return !iv.Start.Before(iv.End) }

// Overlaps reports whether the two half-open spans intersect.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// IntervalSet is an immutable ordered list of disjoint intervals. Operations
// return new sets; the receiver is never mutated.
type IntervalSet []Interval

// NewIntervalSet returns a set holding the single base interval, or an empty
// set if the base is empty.
func NewIntervalSet(base Interval) IntervalSet {
	if base.Empty() {
		return nil
	}
	return IntervalSet{base}
}

// Subtract removes the given blocks from every interval in the set. Blocks
// may overlap each other and need not be sorted; each subtraction splits an
// interval into zero, one or two remaining pieces.
func (s IntervalSet) Subtract(blocks []Interval) IntervalSet {
	if len(s) == 0 || len(blocks) == 0 {
		return s
	}

	sorted := make([]Interval, len(blocks))
	copy(sorted, blocks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var result IntervalSet
	for _, iv := range s {
		cursor := iv.Start
		for _, block := range sorted {
			if !block.Overlaps(Interval{Start: cursor, End: iv.End}) {
				continue
			}
			if cursor.Before(block.Start) {
				result = append(result, Interval{Start: cursor, End: block.Start})
			}
			if block.End.After(cursor) {
				cursor = block.End
			}
			if !cursor.Before(iv.End) {
				break
			}
		}
		if cursor.Before(iv.End) {
			result = append(result, Interval{Start: cursor, End: iv.End})
		}
	}
	return result
}

// ClipBefore drops everything before t: intervals ending at or before t are
// removed and an interval straddling t starts at t in the result.
func (s IntervalSet) ClipBefore(t time.Time) IntervalSet {
	var result IntervalSet
	for _, iv := range s {
		if !iv.End.After(t) {
			continue
		}
		if iv.Start.Before(t) {
			iv = Interval{Start: t, End: iv.End}
		}
		result = append(result, iv)
	}
	return result
}

// ClipAfter drops everything from t on: intervals starting at or after t are
// removed and an interval straddling t is truncated to end at t. Remainders
// that become empty are discarded.
func (s IntervalSet) ClipAfter(t time.Time) IntervalSet {
	var result IntervalSet
	for _, iv := range s {
		if !iv.Start.Before(t) {
			continue
		}
		if iv.End.After(t) {
			iv = Interval{Start: iv.Start, End: t}
		}
		if !iv.Empty() {
			result = append(result, iv)
		}
	}
	return result
}
