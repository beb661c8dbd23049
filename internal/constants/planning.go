package constants

const (
	// Planning preference defaults, applied for any field missing from the
	// user profile.
	DefaultTimezone             = "Europe/Riga"
	DefaultWorkStart            = "10:00"
	DefaultWorkEnd              = "19:00"
	DefaultMaxFocusBlocksPerDay = 3
	DefaultTaskDurationMin      = 60

	// DefaultBusyDurationMin is assumed for calendar events and planned tasks
	// that carry a start but no end.
	DefaultBusyDurationMin = 60

	// Suggestion request defaults.
	DefaultLookaheadDays  = 7
	DefaultMaxSuggestions = 3
)

// DefaultWorkDays is the work-day set used when the profile does not declare one.
var DefaultWorkDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
