package tierlist

import (
	"slices"
	"strings"

	"github.com/meysamhadeli/tierlist/tierlist/models"
)

// MergeByDay drops undated changes, stable-sorts the rest by date and folds entries that share
// a date into one change. Actions keep their encountered order; the last non-empty label and
// note of a day win. Applying it to its own output is a no-op.
func MergeByDay(changes []models.Change) []models.Change {
	dated := make([]models.Change, 0, len(changes))
	for _, change := range changes {
		if change.At != "" {
			dated = append(dated, change)
		}
	}

	slices.SortStableFunc(dated, func(a, b models.Change) int {
		return strings.Compare(a.At, b.At)
	})

	var merged []models.Change
	for _, change := range dated {
		last := len(merged) - 1
		if last < 0 || merged[last].At != change.At {
			merged = append(merged, models.Change{
				At:      change.At,
				Label:   change.Label,
				Note:    change.Note,
				Actions: slices.Clone(change.Actions),
			})
			continue
		}

		day := &merged[last]
		if change.Label != "" {
			day.Label = change.Label
		}
		if change.Note != "" {
			day.Note = change.Note
		}
		day.Actions = append(day.Actions, change.Actions...)
	}

	return merged
}
