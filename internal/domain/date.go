package domain

import "time"

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// DateOf returns the calendar day of t as seen in loc, stored as midnight UTC.
// Log entries keep their date in this form so range queries never depend on
// the server's zone.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// AddDays shifts a calendar day.
func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// DayBounds returns the instant range [start, end) that the calendar day
// covers in loc.
func DayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// DaysInRange counts calendar days in the inclusive range.
func DaysInRange(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
