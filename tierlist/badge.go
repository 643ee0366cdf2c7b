package tierlist

import (
	"fmt"

	"github.com/meysamhadeli/tierlist/tierlist/models"
)

// DefaultDisplayCap is how many models a tier shows before the rest are hidden.
const DefaultDisplayCap = 2

// Warner receives advisory diagnostics. It never changes any output.
type Warner func(format string, args ...any)

// DeltaBadge is the display form of a Delta
type DeltaBadge struct {
	Text        string
	Direction   string // "new", "up" or "down"
	Description string
}

// FormatDelta returns the badge for a delta; ok is false when there is nothing to show.
func FormatDelta(delta models.Delta) (badge DeltaBadge, ok bool) {
	if delta.Kind == models.DeltaNew {
		return DeltaBadge{Text: "new", Direction: "new", Description: "New in this snapshot"}, true
	}
	if delta.Delta == 0 || (delta.Kind != models.DeltaTier && delta.Kind != models.DeltaSpot) {
		return DeltaBadge{}, false
	}

	abs := delta.Delta
	direction, arrow, verb := "up", "▲", "Moved up"
	if delta.Delta < 0 {
		abs = -abs
		direction, arrow, verb = "down", "▼", "Moved down"
	}

	unit := string(delta.Kind)
	if abs != 1 {
		unit += "s"
	}

	return DeltaBadge{
		Text:        fmt.Sprintf("%s%d", arrow, abs),
		Direction:   direction,
		Description: fmt.Sprintf("%s %d %s since last snapshot", verb, abs, unit),
	}, true
}

// VisibleModels truncates a tier to the display cap. The full list is never modified.
// A cap of zero or less shows everything.
func VisibleModels(list []models.Model, displayCap int) (visible []models.Model, overflow bool) {
	if displayCap <= 0 || len(list) <= displayCap {
		return list, false
	}
	return list[:displayCap:displayCap], true
}

// WarnOverflow reports every tier of a snapshot that holds more models than the cap.
func WarnOverflow(snapshot models.Snapshot, tiers []models.Tier, displayCap int, warn Warner) {
	if warn == nil {
		return
	}
	for _, tier := range tiers {
		list := snapshot.Tiers[tier.ID]
		if _, overflow := VisibleModels(list, displayCap); overflow {
			warn("Tier %q has %d models on %s; only the first %d will be shown.", tier.ID, len(list), snapshot.Date, displayCap)
		}
	}
}
