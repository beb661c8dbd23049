package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard wall-clock format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is the standard date+time format for user-facing output
	DateTimeFormat = "2006-01-02 15:04"
)
