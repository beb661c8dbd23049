package validation

import (
	"testing"

	"github.com/MolchanovArt/exocortex/internal/profile"
)

func validateRaw(raw profile.RawPreferences, energy []profile.RawEnergyEntry) ValidationResult {
	return New().ValidateProfile(profile.UserProfile{
		Preferences: profile.Sections{
			PlanningPreferences: raw,
			EnergyProfile:       energy,
		},
	})
}

func hasIssue(result ValidationResult, typ IssueType) bool {
	for _, issue := range result.Issues {
		if issue.Type == typ {
			return true
		}
	}
	return false
}

func TestValidateEmptyProfile(t *testing.T) {
	result := validateRaw(profile.RawPreferences{}, nil)
	if result.HasIssues() {
		t.Errorf("empty profile should be valid, got %v", result.Issues)
	}
	if result.FormatReport() != "Profile is valid." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name   string
		raw    profile.RawPreferences
		energy []profile.RawEnergyEntry
		want   IssueType
	}{
		{
			name: "unknown timezone",
			raw:  profile.RawPreferences{Timezone: "Mars/Olympus_Mons"},
			want: IssueUnknownTimezone,
		},
		{
			name: "unknown weekday token",
			raw:  profile.RawPreferences{WorkDays: []string{"Mon", "Funday"}},
			want: IssueUnknownWeekday,
		},
		{
			name: "no recognizable work days",
			raw:  profile.RawPreferences{WorkDays: []string{"Funday"}},
			want: IssueEmptyWorkDays,
		},
		{
			name: "bad time string",
			raw: profile.RawPreferences{
				WorkHours: &profile.RawWorkHours{Start: "25:00", End: "19:00"},
			},
			want: IssueInvalidTime,
		},
		{
			name: "inverted work hours",
			raw: profile.RawPreferences{
				WorkHours: &profile.RawWorkHours{Start: "19:00", End: "10:00"},
			},
			want: IssueWrappingWorkHours,
		},
		{
			name: "bad sleep block time",
			raw: profile.RawPreferences{
				SleepBlocks: []profile.RawTimeBlock{{Start: "23:00", End: "7am"}},
			},
			want: IssueInvalidTime,
		},
		{
			name: "non-positive focus blocks",
			raw:  profile.RawPreferences{MaxFocusBlocksPerDay: intPtr(0)},
			want: IssueNonPositiveValue,
		},
		{
			name: "non-positive duration",
			raw:  profile.RawPreferences{DefaultTaskDurationMinutes: intPtr(-30)},
			want: IssueNonPositiveValue,
		},
		{
			name: "cutoff before work starts",
			raw: profile.RawPreferences{
				WorkHours:  &profile.RawWorkHours{Start: "10:00", End: "19:00"},
				AvoidAfter: "09:00",
			},
			want: IssueAvoidAfterOutOfWork,
		},
		{
			name:   "unknown energy level",
			energy: []profile.RawEnergyEntry{{Label: "odd", Start: "10:00", End: "12:00", Level: "turbo"}},
			want:   IssueUnknownEnergyLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateRaw(tt.raw, tt.energy)
			if !hasIssue(result, tt.want) {
				t.Errorf("expected issue %s, got %v", tt.want, result.Issues)
			}
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	result := validateRaw(profile.RawPreferences{
		Timezone:  "Nowhere/Nothing",
		WorkDays:  []string{"Funday"},
		WorkHours: &profile.RawWorkHours{Start: "19:00", End: "10:00"},
	}, nil)

	if len(result.Issues) < 3 {
		t.Errorf("expected at least 3 issues, got %v", result.Issues)
	}
}

func intPtr(v int) *int { return &v }
