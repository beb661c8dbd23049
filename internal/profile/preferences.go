package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MolchanovArt/exocortex/internal/constants"
	"github.com/MolchanovArt/exocortex/internal/errors"
	"github.com/MolchanovArt/exocortex/internal/logger"
)

// Clock is a wall-clock time expressed as minutes from midnight. A block end
// may exceed 24h after a midnight-wrapping block has been normalized.
type Clock int

const MinutesPerDay = 24 * 60

// ParseClock parses an HH:MM string into minutes from midnight.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range, expected 00:00-23:59", s)
	}
	return Clock(hour*60 + minute), nil
}

// String formats the clock as HH:MM. Values past midnight wrap around.
func (c Clock) String() string {
	m := int(c) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// At anchors the clock on the given day. The day must be midnight in the
// target location; clocks past 24:00 land on the following day.
func (c Clock) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, int(c), 0, 0, day.Location())
}

// TimeBlock is a labeled wall-clock range. End is strictly after Start; a
// block that wrapped past midnight has End > 24h.
type TimeBlock struct {
	Label string
	Start Clock
	End   Clock
}

// Wraps reports whether the block crosses midnight.
func (b TimeBlock) Wraps() bool { return b.End > MinutesPerDay }

// WorkHours is the daily scheduling window. Unlike sleep and soft blocks it
// may not wrap past midnight.
type WorkHours struct {
	Start Clock
	End   Clock
}

type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
	// EnergyNone marks time not covered by any profile entry. It ranks after
	// low when ordering suggestions.
	EnergyNone EnergyLevel = ""
)

// Rank returns the sort rank of the level: high orders first, untagged last.
func (l EnergyLevel) Rank() int {
	switch l {
	case EnergyHigh:
		return 0
	case EnergyMedium:
		return 1
	case EnergyLow:
		return 2
	default:
		return 3
	}
}

// EnergyEntry describes the user's expected focus capacity for a wall-clock
// range. Entries need not cover the whole day and may wrap past midnight, in
// which case Start > End.
type EnergyEntry struct {
	Label string
	Start Clock
	End   Clock
	Level EnergyLevel
}

// Contains reports whether the wall-clock time c falls inside the entry.
func (e EnergyEntry) Contains(c Clock) bool {
	if e.Start <= e.End {
		return e.Start <= c && c < e.End
	}
	// Wrap-around entry, e.g. 22:00-02:00.
	return c >= e.Start || c < e.End
}

// Preferences is the fully-defaulted availability model. Every field is
// populated; AvoidAfter is nil when no cutoff is configured.
type Preferences struct {
	Timezone               string
	Location               *time.Location
	WorkDays               map[time.Weekday]bool
	WorkHours              WorkHours
	SleepBlocks            []TimeBlock
	SoftBlocks             []TimeBlock
	MaxFocusBlocksPerDay   int
	DefaultTaskDurationMin int
	AvoidAfter             *Clock
}

// RawWorkHours mirrors the work_hours object in the profile file.
type RawWorkHours struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// RawTimeBlock mirrors a sleep/soft block in the profile file.
type RawTimeBlock struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// RawEnergyEntry mirrors an energy_profile entry in the profile file.
type RawEnergyEntry struct {
	Label string `json:"label" yaml:"label"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Level string `json:"level" yaml:"level"`
}

// RawPreferences is the possibly-partial planning_preferences mapping as
// stored in the user profile. Zero values mean "not supplied".
type RawPreferences struct {
	Timezone                   string         `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	WorkDays                   []string       `json:"work_days,omitempty" yaml:"work_days,omitempty"`
	WorkHours                  *RawWorkHours  `json:"work_hours,omitempty" yaml:"work_hours,omitempty"`
	SleepBlocks                []RawTimeBlock `json:"sleep_blocks,omitempty" yaml:"sleep_blocks,omitempty"`
	SoftBlocks                 []RawTimeBlock `json:"soft_blocks,omitempty" yaml:"soft_blocks,omitempty"`
	MaxFocusBlocksPerDay       *int           `json:"max_focus_blocks_per_day,omitempty" yaml:"max_focus_blocks_per_day,omitempty"`
	DefaultTaskDurationMinutes *int           `json:"default_task_duration_minutes,omitempty" yaml:"default_task_duration_minutes,omitempty"`
	AvoidAfter                 string         `json:"avoid_after,omitempty" yaml:"avoid_after,omitempty"`
}

// weekdayTokens maps work-day tokens (first three letters, case-insensitive)
// to calendar weekdays.
var weekdayTokens = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

// WeekdaySet converts work-day tokens ("Mon", "monday", ...) to a weekday set.
// Unknown tokens are ignored.
func WeekdaySet(tokens []string) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(tokens))
	for _, tok := range tokens {
		key := strings.ToLower(tok)
		if len(key) > 3 {
			key = key[:3]
		}
		if wd, ok := weekdayTokens[key]; ok {
			set[wd] = true
		}
	}
	return set
}

// ParsePreferences resolves a raw preference mapping into a fully-defaulted
// Preferences. Missing fields take documented defaults; an unresolvable
// timezone falls back to the default zone. It fails with a ConfigurationError
// only when a supplied time string is unparseable or a supplied block is
// inverted after normalization.
func ParsePreferences(raw RawPreferences) (Preferences, error) {
	prefs := Preferences{
		Timezone:               raw.Timezone,
		MaxFocusBlocksPerDay:   constants.DefaultMaxFocusBlocksPerDay,
		DefaultTaskDurationMin: constants.DefaultTaskDurationMin,
	}

	if prefs.Timezone == "" {
		prefs.Timezone = constants.DefaultTimezone
	}
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		logger.Warn("Unknown timezone, using default", "timezone", prefs.Timezone, "default", constants.DefaultTimezone)
		prefs.Timezone = constants.DefaultTimezone
		loc, err = time.LoadLocation(constants.DefaultTimezone)
		if err != nil {
			// The default zone ships with the tzdata the binary links in.
			loc = time.UTC
		}
	}
	prefs.Location = loc

	workDays := raw.WorkDays
	if len(workDays) == 0 {
		workDays = constants.DefaultWorkDays
	}
	prefs.WorkDays = WeekdaySet(workDays)

	workStart, workEnd := constants.DefaultWorkStart, constants.DefaultWorkEnd
	if raw.WorkHours != nil {
		workStart, workEnd = raw.WorkHours.Start, raw.WorkHours.End
	}
	start, err := ParseClock(workStart)
	if err != nil {
		return Preferences{}, errors.Configuration("work_hours.start", err)
	}
	end, err := ParseClock(workEnd)
	if err != nil {
		return Preferences{}, errors.Configuration("work_hours.end", err)
	}
	if start >= end {
		return Preferences{}, errors.Configurationf("work_hours", "start %s is not before end %s", start, end)
	}
	prefs.WorkHours = WorkHours{Start: start, End: end}

	if prefs.SleepBlocks, err = parseBlocks(raw.SleepBlocks, "sleep_blocks"); err != nil {
		return Preferences{}, err
	}
	if prefs.SoftBlocks, err = parseBlocks(raw.SoftBlocks, "soft_blocks"); err != nil {
		return Preferences{}, err
	}

	if raw.MaxFocusBlocksPerDay != nil && *raw.MaxFocusBlocksPerDay > 0 {
		prefs.MaxFocusBlocksPerDay = *raw.MaxFocusBlocksPerDay
	}
	if raw.DefaultTaskDurationMinutes != nil && *raw.DefaultTaskDurationMinutes > 0 {
		prefs.DefaultTaskDurationMin = *raw.DefaultTaskDurationMinutes
	}

	if raw.AvoidAfter != "" {
		cutoff, err := ParseClock(raw.AvoidAfter)
		if err != nil {
			return Preferences{}, errors.Configuration("avoid_after", err)
		}
		prefs.AvoidAfter = &cutoff
	}

	return prefs, nil
}

// parseBlocks parses and normalizes a block list. A block whose end is at or
// before its start is treated as wrapping past midnight and its end is pushed
// to the next day; a block that is still empty after that is inverted.
func parseBlocks(raw []RawTimeBlock, field string) ([]TimeBlock, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	blocks := make([]TimeBlock, 0, len(raw))
	for i, rb := range raw {
		start, err := ParseClock(rb.Start)
		if err != nil {
			return nil, errors.Configuration(fmt.Sprintf("%s[%d].start", field, i), err)
		}
		end, err := ParseClock(rb.End)
		if err != nil {
			return nil, errors.Configuration(fmt.Sprintf("%s[%d].end", field, i), err)
		}
		if end <= start {
			end += MinutesPerDay
		}
		if start >= end {
			return nil, errors.Configurationf(fmt.Sprintf("%s[%d]", field, i), "start %s is not before end %s", start, end)
		}
		blocks = append(blocks, TimeBlock{Label: rb.Label, Start: start, End: end})
	}
	return blocks, nil
}

// ParseEnergyProfile resolves raw energy entries. Entries keep their raw
// start/end order so wrap-around ranges (start > end) stay detectable.
// Unknown levels are treated as medium.
func ParseEnergyProfile(raw []RawEnergyEntry) ([]EnergyEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	entries := make([]EnergyEntry, 0, len(raw))
	for i, re := range raw {
		start, err := ParseClock(re.Start)
		if err != nil {
			return nil, errors.Configuration(fmt.Sprintf("energy_profile[%d].start", i), err)
		}
		end, err := ParseClock(re.End)
		if err != nil {
			return nil, errors.Configuration(fmt.Sprintf("energy_profile[%d].end", i), err)
		}
		level := EnergyLevel(strings.ToLower(re.Level))
		switch level {
		case EnergyHigh, EnergyMedium, EnergyLow:
		default:
			logger.Warn("Unknown energy level, using medium", "label", re.Label, "level", re.Level)
			level = EnergyMedium
		}
		entries = append(entries, EnergyEntry{Label: re.Label, Start: start, End: end, Level: level})
	}
	return entries, nil
}

// EnergyAt returns the first entry containing the wall-clock time c, or nil
// when no entry covers it. The profile is short enough that a linear scan is
// the right tool.
func EnergyAt(entries []EnergyEntry, c Clock) *EnergyEntry {
	for i := range entries {
		if entries[i].Contains(c) {
			return &entries[i]
		}
	}
	return nil
}
