package timeline

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoSnapshots is returned when a scrubber is built over an empty timeline.
var ErrNoSnapshots = errors.New("no snapshots on the timeline")

// YearMarker labels the first day of a year on the timeline.
type YearMarker struct {
	Year int
	Day  int
}

// Scrubber maps days on the timeline to the snapshot in effect on that day. Day 0 is the
// first snapshot's date and the span ends today; a snapshot stays active until the next one.
type Scrubber struct {
	start        time.Time
	end          time.Time
	daySpan      int
	snapshotDays []int
	currentDay   int
	activeIndex  int
}

// NewScrubber positions a scrubber at the end of the span, i.e. on the latest snapshot
// that is not in the future. The span starts at the first date that parses; a snapshot whose
// date does not parse shares the day of the snapshot before it.
func NewScrubber(dates []string, today time.Time) (*Scrubber, error) {
	if len(dates) == 0 {
		return nil, ErrNoSnapshots
	}

	parsed := make([]*time.Time, len(dates))
	var start *time.Time
	for i, date := range dates {
		if t, err := ParseYMD(date); err == nil {
			parsed[i] = &t
			if start == nil {
				start = &t
			}
		}
	}
	if start == nil {
		return nil, fmt.Errorf("%w: no snapshot has a usable date", ErrInvalidDate)
	}
	end := Midnight(today)

	s := &Scrubber{
		start:        *start,
		end:          end,
		daySpan:      max(0, DiffDays(*start, end)),
		snapshotDays: make([]int, len(dates)),
	}
	previous := 0
	for i, t := range parsed {
		if t != nil {
			previous = max(previous, DiffDays(*start, *t))
		}
		s.snapshotDays[i] = previous
	}

	s.SetDay(s.daySpan)
	return s, nil
}

func (s *Scrubber) DaySpan() int        { return s.daySpan }
func (s *Scrubber) CurrentDay() int     { return s.currentDay }
func (s *Scrubber) ActiveIndex() int    { return s.activeIndex }
func (s *Scrubber) SnapshotDays() []int { return append([]int(nil), s.snapshotDays...) }

// ActiveIndexForDay returns the last snapshot whose day is not after day.
func (s *Scrubber) ActiveIndexForDay(day int) int {
	day = clamp(day, 0, s.daySpan)

	lo, hi, best := 0, len(s.snapshotDays)-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if s.snapshotDays[mid] <= day {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// SetDay moves the scrubber and reports whether the active snapshot changed.
func (s *Scrubber) SetDay(day int) bool {
	s.currentDay = clamp(day, 0, s.daySpan)
	next := s.ActiveIndexForDay(s.currentDay)
	changed := next != s.activeIndex
	s.activeIndex = next
	return changed
}

// SetDate moves the scrubber to a calendar date.
func (s *Scrubber) SetDate(date string) (bool, error) {
	t, err := ParseYMD(date)
	if err != nil {
		return false, err
	}
	return s.SetDay(DiffDays(s.start, t)), nil
}

// Step jumps to the day of the snapshot step positions away from the active one.
func (s *Scrubber) Step(step int) bool {
	next := clamp(s.activeIndex+step, 0, len(s.snapshotDays)-1)
	return s.SetDay(s.snapshotDays[next])
}

// DateForDay converts a timeline day back into a calendar date.
func (s *Scrubber) DateForDay(day int) time.Time {
	return s.start.AddDate(0, 0, day)
}

// Progress is the current day as a fraction of the span.
func (s *Scrubber) Progress() float64 {
	return s.Fraction(s.currentDay)
}

// Fraction places any day on [0, 1].
func (s *Scrubber) Fraction(day int) float64 {
	if s.daySpan <= 0 {
		return 0
	}
	return float64(clamp(day, 0, s.daySpan)) / float64(s.daySpan)
}

// YearMarkers returns the start year at day 0 and January 1st of every later year in the span.
func (s *Scrubber) YearMarkers() []YearMarker {
	markers := []YearMarker{{Year: s.start.Year(), Day: 0}}
	for year := s.start.Year() + 1; year <= s.end.Year(); year++ {
		d := DiffDays(s.start, time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		if d < 0 || d > s.daySpan {
			continue
		}
		markers = append(markers, YearMarker{Year: year, Day: d})
	}
	return markers
}

func clamp(value, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(value, lo), hi)
}
