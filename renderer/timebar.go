package renderer

import (
	"math"
	"strconv"
	"strings"

	styles "github.com/meysamhadeli/tierlist/constants/lipgloss"
	"github.com/meysamhadeli/tierlist/timeline"
)

const (
	minTimebarWidth = 20
	railRune        = '─'
	snapshotRune    = '•'
	thumbRune       = '◆'
)

// RenderTimebar draws the scrubber as three lines: year labels, the rail with one dot per
// snapshot and the thumb, and the date under the thumb.
func RenderTimebar(s *timeline.Scrubber, width int) string {
	width = max(width, minTimebarWidth)

	column := func(day int) int {
		return int(math.Round(s.Fraction(day) * float64(width-1)))
	}

	rail := []rune(strings.Repeat(string(railRune), width))
	for _, day := range s.SnapshotDays() {
		rail[column(day)] = snapshotRune
	}
	thumb := column(s.CurrentDay())

	years := []rune(strings.Repeat(" ", width))
	nextFree := 0
	for _, marker := range s.YearMarkers() {
		label := []rune(strconv.Itoa(marker.Year))
		at := min(column(marker.Day), width-len(label))
		if at < nextFree || at < 0 {
			continue
		}
		copy(years[at:], label)
		nextFree = at + len(label) + 1
	}

	bubble := timeline.FormatLong(s.DateForDay(s.CurrentDay()))
	offset := 0
	if len(bubble) < width {
		offset = min(max(thumb-len(bubble)/2, 0), width-len(bubble))
	}

	return strings.Join([]string{
		styles.Muted.Render(strings.TrimRight(string(years), " ")),
		styles.Muted.Render(string(rail[:thumb])) +
			styles.BlueSky.Render(string(thumbRune)) +
			styles.Muted.Render(string(rail[thumb+1:])),
		strings.Repeat(" ", offset) + styles.Info.Render(bubble),
	}, "\n")
}
