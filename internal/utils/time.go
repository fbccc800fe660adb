package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/questlog/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// FormatDate formats t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Today returns the current calendar date (YYYY-MM-DD) in loc.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return FormatDate(time.Now().In(loc))
}

// ParseDate parses a YYYY-MM-DD string as a calendar date at UTC midnight.
func ParseDate(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// DaysBetween returns the whole number of calendar days from a to b.
// Both are parsed as calendar dates, so DST shifts never change the result.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
