package tierlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeByDay_ConcatenatesInEncounteredOrder(t *testing.T) {
	changes := []models.Change{
		{At: "2024-02-01", Label: "feb", Actions: []models.Action{place("c", "s", models.Top())}},
		{At: "2024-01-01", Label: "first", Note: "n1", Actions: []models.Action{place("a", "s", models.Top())}},
		{At: "2024-01-01", Label: "", Note: "n2", Actions: []models.Action{place("b", "s", models.Top())}},
		{At: "2024-01-01", Label: "third", Actions: []models.Action{models.Remove{ID: "a"}}},
	}

	merged := MergeByDay(changes)

	require.Len(t, merged, 2)
	assert.Equal(t, "2024-01-01", merged[0].At)
	assert.Equal(t, "third", merged[0].Label)
	assert.Equal(t, "n2", merged[0].Note)
	assert.Equal(t, []models.Action{
		place("a", "s", models.Top()),
		place("b", "s", models.Top()),
		models.Remove{ID: "a"},
	}, merged[0].Actions)
	assert.Equal(t, "feb", merged[1].Label)
}

func TestMergeByDay_Idempotent(t *testing.T) {
	inputs := [][]models.Change{
		nil,
		{{At: ""}},
		{
			{At: "2024-01-03", Note: "x"},
			{At: "2024-01-01", Label: "one", Actions: []models.Action{place("a", "s", models.Top())}},
			{At: "2024-01-03", Label: "three", Actions: []models.Action{models.Remove{ID: "a"}}},
			{At: "2024-01-01", Actions: []models.Action{place("b", "a", models.AtIndex(2))}},
		},
	}

	for _, changes := range inputs {
		once := MergeByDay(changes)
		twice := MergeByDay(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("merge is not idempotent (-once +twice):\n%s", diff)
		}
	}
}

func TestMergeByDay_DoesNotAliasInput(t *testing.T) {
	first := []models.Action{place("a", "s", models.Top())}
	changes := []models.Change{
		{At: "2024-01-01", Actions: first},
		{At: "2024-01-01", Actions: []models.Action{place("b", "s", models.Top())}},
	}

	MergeByDay(changes)

	assert.Len(t, changes[0].Actions, 1)
	assert.Len(t, first, 1)
}
