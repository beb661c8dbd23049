package planner

import (
	"errors"
	"reflect"
	"testing"
	"time"

	apperrors "github.com/MolchanovArt/exocortex/internal/errors"
	"github.com/MolchanovArt/exocortex/internal/models"
	"github.com/MolchanovArt/exocortex/internal/profile"
)

// 2025-11-27 is a Thursday.
var testDay = time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC)

type fakeBusySource struct {
	items []models.BusyInterval
	err   error
}

func (f *fakeBusySource) FetchBusyItems(start, end time.Time) ([]models.BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func testPrefs(t *testing.T, raw profile.RawPreferences) profile.Preferences {
	t.Helper()
	if raw.Timezone == "" {
		raw.Timezone = "UTC"
	}
	prefs, err := profile.ParsePreferences(raw)
	if err != nil {
		t.Fatalf("ParsePreferences failed: %v", err)
	}
	return prefs
}

func busy(startHour, startMin, endHour, endMin int) models.BusyInterval {
	return models.BusyInterval{
		Start: time.Date(2025, 11, 27, startHour, startMin, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 27, endHour, endMin, 0, 0, time.UTC),
	}
}

func slotTimes(slots []SuggestedSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("2006-01-02 15:04") + "–" + s.End.Format("15:04")
	}
	return out
}

func TestSuggestAvoidsCalendarEvents(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	source := &fakeBusySource{items: []models.BusyInterval{busy(11, 0, 12, 0)}}
	engine := New(prefs, nil, source)

	slots, err := engine.Suggest(Request{
		Now:            testDay,
		DaysAhead:      1,
		DurationMin:    60,
		MaxSuggestions: 10,
	})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	event := Interval{
		Start: time.Date(2025, 11, 27, 11, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 27, 12, 0, 0, 0, time.UTC),
	}
	var found1000, found1200 bool
	for _, slot := range slots {
		if (Interval{Start: slot.Start, End: slot.End}).Overlaps(event) {
			t.Errorf("slot %v–%v overlaps the 11:00–12:00 event", slot.Start, slot.End)
		}
		if slot.Start.Hour() == 10 && slot.Start.Minute() == 0 {
			found1000 = true
		}
		if slot.Start.Hour() == 12 && slot.Start.Minute() == 0 {
			found1200 = true
		}
	}
	if !found1000 {
		t.Errorf("expected a 10:00 slot before the event, got %v", slotTimes(slots))
	}
	if !found1200 {
		t.Errorf("expected a 12:00 slot after the event, got %v", slotTimes(slots))
	}
}

func TestSuggestRanksEnergyBeforeTime(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	energy, err := profile.ParseEnergyProfile([]profile.RawEnergyEntry{
		{Label: "afternoon peak", Start: "14:00", End: "16:00", Level: "high"},
		{Label: "morning", Start: "10:00", End: "12:00", Level: "medium"},
	})
	if err != nil {
		t.Fatalf("ParseEnergyProfile failed: %v", err)
	}

	// Busy 11:00–14:00 splits the day into a medium morning sub-interval and
	// a high afternoon one.
	source := &fakeBusySource{items: []models.BusyInterval{busy(11, 0, 14, 0)}}
	engine := New(prefs, energy, source)

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 5})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) < 2 {
		t.Fatalf("expected at least 2 slots, got %v", slotTimes(slots))
	}

	if slots[0].Energy != profile.EnergyHigh || slots[0].Start.Hour() != 14 {
		t.Errorf("first slot = %v (%s), want the 14:00 high-energy slot", slotTimes(slots)[0], slots[0].Energy)
	}
	if slots[1].Energy != profile.EnergyMedium || slots[1].Start.Hour() != 10 {
		t.Errorf("second slot = %v (%s), want the 10:00 medium-energy slot", slotTimes(slots)[1], slots[1].Energy)
	}
	if slots[0].Reason != "afternoon peak" {
		t.Errorf("reason = %q, want the energy label", slots[0].Reason)
	}
}

func TestSuggestRespectsSleepBlocks(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:   &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		SleepBlocks: []profile.RawTimeBlock{{Start: "02:00", End: "11:00"}},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots after the sleep block")
	}
	for _, slot := range slots {
		if slot.Start.Hour() < 11 {
			t.Errorf("slot starts at %v, inside the 02:00–11:00 sleep block", slot.Start)
		}
	}
}

func TestSuggestRespectsSoftBlocks(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:  &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		SoftBlocks: []profile.RawTimeBlock{{Label: "lunch", Start: "13:00", End: "14:00"}},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	lunch := Interval{
		Start: time.Date(2025, 11, 27, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 27, 14, 0, 0, 0, time.UTC),
	}
	for _, slot := range slots {
		if (Interval{Start: slot.Start, End: slot.End}).Overlaps(lunch) {
			t.Errorf("slot %v–%v overlaps the lunch soft block", slot.Start, slot.End)
		}
	}
}

func TestSuggestAvoidAfterDiscardsShortRemainder(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:  &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		AvoidAfter: "18:00",
	})
	// Busy until 17:30 leaves only a 17:30–19:00 sub-interval, which the
	// cutoff truncates to 17:30–18:00 — too short for a 60 minute slot.
	source := &fakeBusySource{items: []models.BusyInterval{busy(10, 0, 17, 30)}}
	engine := New(prefs, nil, source)

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", slotTimes(slots))
	}
}

// A sub-interval that straddles the cutoff but is still long enough after
// truncation keeps producing a slot: the rule is that no slot may start at or
// after the cutoff, not that the original sub-interval must end before it.
// The truncation additionally guarantees the slot cannot run past the cutoff.
func TestSuggestAvoidAfterTruncatedIntervalStillFits(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:  &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		AvoidAfter: "18:00",
	})
	source := &fakeBusySource{items: []models.BusyInterval{busy(10, 0, 17, 0)}}
	engine := New(prefs, nil, source)

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected exactly one slot, got %v", slotTimes(slots))
	}
	if slots[0].Start.Hour() != 17 || slots[0].End.Hour() != 18 {
		t.Errorf("slot = %v, want 17:00–18:00", slotTimes(slots)[0])
	}
	cutoff := time.Date(2025, 11, 27, 18, 0, 0, 0, time.UTC)
	if slots[0].End.After(cutoff) {
		t.Errorf("slot runs past the 18:00 cutoff")
	}
}

func TestSuggestNoSlotStartsAtOrAfterCutoff(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:  &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		AvoidAfter: "16:00",
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10, Tile: true})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	cutoff := time.Date(2025, 11, 27, 16, 0, 0, 0, time.UTC)
	for _, slot := range slots {
		if !slot.Start.Before(cutoff) {
			t.Errorf("slot starts at %v, at or after the 16:00 cutoff", slot.Start)
		}
	}
}

func TestSuggestSkipsNonWorkDays(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkDays:  []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	// Window covers Thu 27th through Sun 30th.
	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 4, DurationMin: 60, MaxSuggestions: 20})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots on the work days in the window")
	}
	for _, slot := range slots {
		wd := slot.Start.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Errorf("slot %v falls on %s", slot.Start, wd)
		}
	}
}

func TestSuggestFullyBusyDayYieldsOtherDays(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	source := &fakeBusySource{items: []models.BusyInterval{
		{Start: testDay, End: testDay.AddDate(0, 0, 1)},
	}}
	engine := New(prefs, nil, source)

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 2, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots from the following day")
	}
	for _, slot := range slots {
		if slot.Start.Day() == 27 {
			t.Errorf("slot %v on the fully busy day", slot.Start)
		}
	}
}

func TestSuggestCapsSlotsPerDay(t *testing.T) {
	maxFocus := 2
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:            &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		MaxFocusBlocksPerDay: &maxFocus,
	})
	// Three free sub-intervals on the same day.
	source := &fakeBusySource{items: []models.BusyInterval{busy(11, 0, 12, 0), busy(14, 0, 15, 0)}}
	engine := New(prefs, nil, source)

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	perDay := make(map[string]int)
	for _, slot := range slots {
		perDay[slot.Start.Format("2006-01-02")]++
	}
	for day, n := range perDay {
		if n > maxFocus {
			t.Errorf("day %s has %d slots, cap is %d", day, n, maxFocus)
		}
	}
}

func TestSuggestSingleCandidatePerSubInterval(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	// The whole 10:00–19:00 window is one free sub-interval: exactly one
	// candidate, anchored at its start.
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %v", slotTimes(slots))
	}
	if slots[0].Start.Hour() != 10 {
		t.Errorf("slot anchored at %v, want 10:00", slots[0].Start)
	}
}

func TestSuggestTilingFillsLongIntervals(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "13:00"},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10, Tile: true})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	want := []string{"2025-11-27 10:00–11:00", "2025-11-27 11:00–12:00", "2025-11-27 12:00–13:00"}
	if !reflect.DeepEqual(slotTimes(slots), want) {
		t.Errorf("tiled slots = %v, want %v", slotTimes(slots), want)
	}
}

func TestSuggestUsesDefaultDurationFromPreferences(t *testing.T) {
	duration := 30
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours:                  &profile.RawWorkHours{Start: "10:00", End: "19:00"},
		DefaultTaskDurationMinutes: &duration,
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1, MaxSuggestions: 5})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected at least one slot")
	}
	if got := slots[0].End.Sub(slots[0].Start); got != 30*time.Minute {
		t.Errorf("slot duration = %v, want 30m", got)
	}
}

func TestSuggestSlotsStayInsideWorkHours(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	engine := New(prefs, nil, &fakeBusySource{items: []models.BusyInterval{busy(12, 0, 13, 0)}})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 5, DurationMin: 90, MaxSuggestions: 50, Tile: true})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	for _, slot := range slots {
		startMin := slot.Start.Hour()*60 + slot.Start.Minute()
		endMin := slot.End.Hour()*60 + slot.End.Minute()
		if startMin < 10*60 || (endMin != 0 && endMin > 19*60) {
			t.Errorf("slot %v–%v outside the 10:00–19:00 work window", slot.Start, slot.End)
		}
	}
}

func TestSuggestOrderingIsStable(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	energy, _ := profile.ParseEnergyProfile([]profile.RawEnergyEntry{
		{Label: "morning", Start: "10:00", End: "12:00", Level: "high"},
		{Label: "afternoon", Start: "12:00", End: "17:00", Level: "medium"},
	})
	source := &fakeBusySource{items: []models.BusyInterval{busy(11, 0, 12, 0), busy(14, 0, 15, 0)}}
	engine := New(prefs, energy, source)

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 3, DurationMin: 60, MaxSuggestions: 20})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.Energy.Rank() > cur.Energy.Rank() {
			t.Errorf("slot %d (%s) ranked after weaker energy %s", i, cur.Energy, prev.Energy)
		}
		if prev.Energy.Rank() == cur.Energy.Rank() && prev.Start.After(cur.Start) {
			t.Errorf("slots %d and %d with equal energy are not time-ordered", i-1, i)
		}
	}
}

func TestSuggestIsDeterministic(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	energy, _ := profile.ParseEnergyProfile([]profile.RawEnergyEntry{
		{Label: "morning", Start: "10:00", End: "12:00", Level: "high"},
	})
	source := &fakeBusySource{items: []models.BusyInterval{busy(11, 0, 12, 0)}}
	engine := New(prefs, energy, source)

	req := Request{Now: testDay, DaysAhead: 7, DurationMin: 60, MaxSuggestions: 10}
	first, err := engine.Suggest(req)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	second, err := engine.Suggest(req)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical requests produced different output:\n%v\n%v", first, second)
	}
}

func TestSuggestTruncatesToMaxSuggestions(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	slots, err := engine.Suggest(Request{Now: testDay, DaysAhead: 14, DurationMin: 60, MaxSuggestions: 3})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(slots) > 3 {
		t.Errorf("got %d slots, max is 3", len(slots))
	}
}

func TestSuggestClipsToNow(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{
		WorkHours: &profile.RawWorkHours{Start: "10:00", End: "19:00"},
	})
	engine := New(prefs, nil, &fakeBusySource{})

	now := time.Date(2025, 11, 27, 15, 30, 0, 0, time.UTC)
	slots, err := engine.Suggest(Request{Now: now, DaysAhead: 1, DurationMin: 60, MaxSuggestions: 10})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	for _, slot := range slots {
		if slot.Start.Before(now) {
			t.Errorf("slot %v starts in the past", slot.Start)
		}
	}
}

func TestSuggestPropagatesRetrievalError(t *testing.T) {
	prefs := testPrefs(t, profile.RawPreferences{})
	engine := New(prefs, nil, &fakeBusySource{err: errors.New("database is locked")})

	_, err := engine.Suggest(Request{Now: testDay, DaysAhead: 1})
	if err == nil {
		t.Fatal("expected an error from a failing busy source")
	}
	if !apperrors.IsRetrieval(err) {
		t.Errorf("error %v is not a retrieval error", err)
	}
}
