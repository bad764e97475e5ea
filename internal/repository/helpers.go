package repository

import "time"

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// parseTime parses an RFC3339 timestamp stored as TEXT.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// formatTime formats a timestamp for TEXT storage.
func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// parseDate parses a date-only TEXT column (YYYY-MM-DD).
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
