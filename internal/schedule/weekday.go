package schedule

import "time"

// The whole backend uses a single weekday encoding: 0 = Monday .. 6 = Sunday.
// Calendar widgets that start the week on Saturday or Sunday convert on
// their side, never here.

// WeekdayOf converts a date to the Monday-first encoding.
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ValidWeekday reports whether weekday is within the 0-6 range.
func ValidWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}

// WeekdayShortName returns the short English label for a Monday-first weekday.
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// DateOf truncates t to its calendar date at midnight UTC. All dates held
// in stores and projections are normalized through here so that equality
// checks on (student, date) pairs are exact.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
