package tierlist

import (
	"testing"

	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(date string, tiers map[string][]string) models.Snapshot {
	snapshot := models.Snapshot{ID: date, Date: date, Tiers: make(map[string][]models.Model)}
	for tierID, ids := range tiers {
		list := make([]models.Model, 0, len(ids))
		for _, id := range ids {
			list = append(list, models.Model{ID: id, Name: id})
		}
		snapshot.Tiers[tierID] = list
	}
	return snapshot
}

func TestComputeDeltas_SingleSnapshot(t *testing.T) {
	deltas := ComputeDeltas([]models.Snapshot{board("2024-01-01", map[string][]string{"s": {"m1"}})}, testTiers)

	require.Len(t, deltas, 1)
	assert.Empty(t, deltas[0])
}

func TestComputeDeltas_SpotSwap(t *testing.T) {
	snapshots := []models.Snapshot{
		board("2024-01-01", map[string][]string{"s": {"m1", "m2"}}),
		board("2024-01-02", map[string][]string{"s": {"m2", "m1"}}),
	}

	deltas := ComputeDeltas(snapshots, testTiers)

	require.Len(t, deltas, 2)
	assert.Equal(t, map[string]models.Delta{
		"m1": {Kind: models.DeltaSpot, Delta: -1},
		"m2": {Kind: models.DeltaSpot, Delta: 1},
	}, deltas[1])
}

func TestComputeDeltas_TierMoves(t *testing.T) {
	snapshots := []models.Snapshot{
		board("2024-01-01", map[string][]string{"s": {}, "a": {"m1"}, "b": {"m2"}}),
		board("2024-01-02", map[string][]string{"s": {"m1"}, "a": {}, "b": {}}),
		board("2024-01-03", map[string][]string{"s": {}, "a": {}, "b": {"m1"}}),
	}

	deltas := ComputeDeltas(snapshots, testTiers)

	assert.Equal(t, map[string]models.Delta{"m1": {Kind: models.DeltaTier, Delta: 1}}, deltas[1])
	assert.Equal(t, map[string]models.Delta{"m1": {Kind: models.DeltaTier, Delta: -2}}, deltas[2])
}

func TestComputeDeltas_NewAndUnchanged(t *testing.T) {
	snapshots := []models.Snapshot{
		board("2024-01-01", map[string][]string{"s": {"m1"}}),
		board("2024-01-02", map[string][]string{"s": {"m1"}, "a": {"m2"}}),
		board("2024-01-03", map[string][]string{"s": {"m1"}, "a": {"m2"}}),
	}

	deltas := ComputeDeltas(snapshots, testTiers)

	require.Len(t, deltas, 3)
	assert.Empty(t, deltas[0])
	assert.Equal(t, map[string]models.Delta{"m2": {Kind: models.DeltaNew}}, deltas[1])
	assert.Empty(t, deltas[2])
}

func TestComputeDeltas_ReturningModelIsNew(t *testing.T) {
	snapshots := []models.Snapshot{
		board("2024-01-01", map[string][]string{"s": {"m1"}}),
		board("2024-01-02", map[string][]string{}),
		board("2024-01-03", map[string][]string{"b": {"m1"}}),
	}

	deltas := ComputeDeltas(snapshots, testTiers)

	assert.Empty(t, deltas[1])
	assert.Equal(t, models.Delta{Kind: models.DeltaNew}, deltas[2]["m1"])
}

func TestComputeDeltas_IgnoresUnknownTiers(t *testing.T) {
	snapshots := []models.Snapshot{
		board("2024-01-01", map[string][]string{}),
		board("2024-01-02", map[string][]string{"zz": {"m1"}}),
	}

	deltas := ComputeDeltas(snapshots, testTiers)

	assert.Empty(t, deltas[1])
}

func TestComputeDeltas_SlugifiesMissingIDs(t *testing.T) {
	first := models.Snapshot{Date: "2024-01-01", Tiers: map[string][]models.Model{
		"s": {{Name: "Claude 3 Opus"}, {Name: "GPT-4"}},
	}}
	second := models.Snapshot{Date: "2024-01-02", Tiers: map[string][]models.Model{
		"s": {{Name: "GPT-4"}, {Name: "Claude 3 Opus"}},
	}}

	deltas := ComputeDeltas([]models.Snapshot{first, second}, testTiers)

	assert.Equal(t, models.Delta{Kind: models.DeltaSpot, Delta: 1}, deltas[1]["gpt-4"])
	assert.Equal(t, models.Delta{Kind: models.DeltaSpot, Delta: -1}, deltas[1]["claude-3-opus"])
}

func TestComputeDeltas_FromChangelog(t *testing.T) {
	changes := []models.Change{
		day("2024-01-01", place("m1", "a", models.Bottom()), place("m2", "a", models.Bottom())),
		day("2024-02-01", place("m2", "s", models.Top()), place("m3", "a", models.Top())),
	}

	deltas := ComputeDeltas(BuildSnapshots(testTiers, changes), testTiers)

	// m1 is pushed from spot 0 to spot 1 behind the newcomer
	assert.Equal(t, map[string]models.Delta{
		"m1": {Kind: models.DeltaSpot, Delta: -1},
		"m2": {Kind: models.DeltaTier, Delta: 1},
		"m3": {Kind: models.DeltaNew},
	}, deltas[1])
}
