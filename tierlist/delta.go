package tierlist

import (
	"github.com/meysamhadeli/tierlist/tierlist/models"
)

type location struct {
	tierIndex int
	position  int
}

// ComputeDeltas compares every snapshot with the one before it. The result is aligned with
// snapshots; index 0 is always an empty map and unchanged models have no entry.
func ComputeDeltas(snapshots []models.Snapshot, tiers []models.Tier) []map[string]models.Delta {
	tierIndex := make(map[string]int, len(tiers))
	for i, tier := range tiers {
		if tier.ID != "" {
			tierIndex[tier.ID] = i
		}
	}

	locations := make([]map[string]location, len(snapshots))
	for i := range snapshots {
		locations[i] = locate(&snapshots[i], tiers, tierIndex)
	}

	deltas := make([]map[string]models.Delta, len(snapshots))
	for i := range deltas {
		deltas[i] = make(map[string]models.Delta)
	}

	for i := 1; i < len(snapshots); i++ {
		prev, curr, out := locations[i-1], locations[i], deltas[i]

		for modelID, currLoc := range curr {
			prevLoc, seen := prev[modelID]
			if !seen {
				out[modelID] = models.Delta{Kind: models.DeltaNew}
				continue
			}

			if currLoc.tierIndex != prevLoc.tierIndex {
				if delta := prevLoc.tierIndex - currLoc.tierIndex; delta != 0 {
					out[modelID] = models.Delta{Kind: models.DeltaTier, Delta: delta}
				}
				continue
			}

			if delta := prevLoc.position - currLoc.position; delta != 0 {
				out[modelID] = models.Delta{Kind: models.DeltaSpot, Delta: delta}
			}
		}
	}

	return deltas
}

func locate(snapshot *models.Snapshot, tiers []models.Tier, tierIndex map[string]int) map[string]location {
	out := make(map[string]location)
	for _, tier := range tiers {
		for position, model := range snapshot.Tiers[tier.ID] {
			out[ModelKey(model)] = location{
				tierIndex: tierIndex[tier.ID],
				position:  position,
			}
		}
	}
	return out
}

// ModelKey is the identity used to track a model across snapshots.
func ModelKey(model models.Model) string {
	if model.ID != "" {
		return model.ID
	}
	return Slugify(model.Name)
}
