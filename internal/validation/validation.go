// Package validation checks a user profile for problems before it reaches the
// planner. Unlike profile parsing, which fails on the first bad field,
// validation collects every issue so the user can fix the file in one pass.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/MolchanovArt/exocortex/internal/profile"
)

// IssueType represents the kind of profile problem detected
type IssueType string

const (
	IssueInvalidTime         IssueType = "invalid_time"
	IssueInvertedBlock       IssueType = "inverted_block"
	IssueUnknownWeekday      IssueType = "unknown_weekday"
	IssueUnknownTimezone     IssueType = "unknown_timezone"
	IssueNonPositiveValue    IssueType = "non_positive_value"
	IssueUnknownEnergyLevel  IssueType = "unknown_energy_level"
	IssueWrappingWorkHours   IssueType = "wrapping_work_hours"
	IssueEmptyWorkDays       IssueType = "empty_work_days"
	IssueAvoidAfterOutOfWork IssueType = "avoid_after_out_of_work"
)

// Issue is a single detected problem with a pointer to the offending field
type Issue struct {
	Type        IssueType
	Field       string
	Description string
}

// ValidationResult contains all detected issues
type ValidationResult struct {
	Issues []Issue
}

// HasIssues returns true if any issues were detected
func (vr *ValidationResult) HasIssues() bool {
	return len(vr.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasIssues() {
		return "Profile is valid."
	}

	var b strings.Builder
	b.WriteString("Profile issues detected:\n")
	for _, issue := range vr.Issues {
		fmt.Fprintf(&b, "- [%s] %s\n", issue.Field, issue.Description)
	}
	return b.String()
}

// Validator checks user profiles for issues
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateProfile checks the planning preferences and energy profile of a
// user profile.
func (v *Validator) ValidateProfile(p profile.UserProfile) ValidationResult {
	result := ValidationResult{Issues: []Issue{}}

	v.validatePreferences(&result, p.Preferences.PlanningPreferences)
	v.validateEnergyProfile(&result, p.Preferences.EnergyProfile)

	return result
}

func (v *Validator) validatePreferences(result *ValidationResult, raw profile.RawPreferences) {
	if raw.Timezone != "" {
		if _, err := time.LoadLocation(raw.Timezone); err != nil {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueUnknownTimezone,
				Field:       "timezone",
				Description: fmt.Sprintf("unknown timezone %q, the default will be used", raw.Timezone),
			})
		}
	}

	if len(raw.WorkDays) > 0 {
		known := 0
		for _, tok := range raw.WorkDays {
			if len(profile.WeekdaySet([]string{tok})) == 1 {
				known++
			} else {
				result.Issues = append(result.Issues, Issue{
					Type:        IssueUnknownWeekday,
					Field:       "work_days",
					Description: fmt.Sprintf("unrecognized weekday token %q", tok),
				})
			}
		}
		if known == 0 {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueEmptyWorkDays,
				Field:       "work_days",
				Description: "no recognizable work days, nothing will ever be suggested",
			})
		}
	}

	var workStart, workEnd profile.Clock
	workHoursValid := false
	if raw.WorkHours != nil {
		start, startErr := v.checkTime(result, "work_hours.start", raw.WorkHours.Start)
		end, endErr := v.checkTime(result, "work_hours.end", raw.WorkHours.End)
		if startErr == nil && endErr == nil {
			if start >= end {
				result.Issues = append(result.Issues, Issue{
					Type:        IssueWrappingWorkHours,
					Field:       "work_hours",
					Description: fmt.Sprintf("start %s is not before end %s, work hours may not wrap past midnight", start, end),
				})
			} else {
				workStart, workEnd = start, end
				workHoursValid = true
			}
		}
	}

	v.validateBlocks(result, "sleep_blocks", raw.SleepBlocks)
	v.validateBlocks(result, "soft_blocks", raw.SoftBlocks)

	if raw.MaxFocusBlocksPerDay != nil && *raw.MaxFocusBlocksPerDay <= 0 {
		result.Issues = append(result.Issues, Issue{
			Type:        IssueNonPositiveValue,
			Field:       "max_focus_blocks_per_day",
			Description: fmt.Sprintf("must be positive, got %d", *raw.MaxFocusBlocksPerDay),
		})
	}
	if raw.DefaultTaskDurationMinutes != nil && *raw.DefaultTaskDurationMinutes <= 0 {
		result.Issues = append(result.Issues, Issue{
			Type:        IssueNonPositiveValue,
			Field:       "default_task_duration_minutes",
			Description: fmt.Sprintf("must be positive, got %d", *raw.DefaultTaskDurationMinutes),
		})
	}

	if raw.AvoidAfter != "" {
		cutoff, err := v.checkTime(result, "avoid_after", raw.AvoidAfter)
		if err == nil && workHoursValid && (cutoff <= workStart || cutoff > workEnd) {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueAvoidAfterOutOfWork,
				Field:       "avoid_after",
				Description: fmt.Sprintf("cutoff %s falls outside work hours %s-%s", cutoff, workStart, workEnd),
			})
		}
	}
}

func (v *Validator) validateBlocks(result *ValidationResult, field string, blocks []profile.RawTimeBlock) {
	for i, block := range blocks {
		v.checkTime(result, fmt.Sprintf("%s[%d].start", field, i), block.Start)
		v.checkTime(result, fmt.Sprintf("%s[%d].end", field, i), block.End)
	}
}

func (v *Validator) validateEnergyProfile(result *ValidationResult, entries []profile.RawEnergyEntry) {
	for i, entry := range entries {
		v.checkTime(result, fmt.Sprintf("energy_profile[%d].start", i), entry.Start)
		v.checkTime(result, fmt.Sprintf("energy_profile[%d].end", i), entry.End)

		switch profile.EnergyLevel(strings.ToLower(entry.Level)) {
		case profile.EnergyHigh, profile.EnergyMedium, profile.EnergyLow:
		default:
			result.Issues = append(result.Issues, Issue{
				Type:        IssueUnknownEnergyLevel,
				Field:       fmt.Sprintf("energy_profile[%d].level", i),
				Description: fmt.Sprintf("unknown level %q, will be treated as medium", entry.Level),
			})
		}
	}
}

func (v *Validator) checkTime(result *ValidationResult, field, value string) (profile.Clock, error) {
	c, err := profile.ParseClock(value)
	if err != nil {
		result.Issues = append(result.Issues, Issue{
			Type:        IssueInvalidTime,
			Field:       field,
			Description: err.Error(),
		})
	}
	return c, err
}
