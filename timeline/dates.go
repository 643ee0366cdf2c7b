package timeline

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

const (
	day        = 24 * time.Hour
	longLayout = "2 January 2006"
)

var ymdPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseYMD parses a calendar date as UTC midnight. Out-of-range days roll over the way
// time.Date normalizes them.
func ParseYMD(value string) (time.Time, error) {
	match := ymdPattern.FindStringSubmatch(value)
	if match == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	dayOfMonth, _ := strconv.Atoi(match[3])
	return time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC), nil
}

// FormatYMD is the inverse of ParseYMD.
func FormatYMD(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// FormatLong renders a date like "5 March 2024".
func FormatLong(t time.Time) string {
	return t.UTC().Format(longLayout)
}

// FormatDate renders a stored date string for display. Unparseable values are returned as-is.
func FormatDate(value string) string {
	if value == "" {
		return ""
	}
	if t, err := ParseYMD(value); err == nil {
		return FormatLong(t)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return FormatLong(t)
	}
	return value
}

// DiffDays counts whole days from start to end, rounding down.
func DiffDays(start, end time.Time) int {
	return int(math.Floor(float64(end.Sub(start)) / float64(day)))
}

// Midnight truncates t to its UTC calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
