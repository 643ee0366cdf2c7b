package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/meysamhadeli/tierlist/tierlist"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `{
  "schemaVersion": 2,
  "title": "Frontier models",
  "tiers": [ { "id": "s", "label": "S", "accent": "sunflower" }, { "id": "a" } ],
  "changes": [
    { "at": "2024-03-01", "label": "Launch", "actions": [
      { "type": "upsert_model", "model": { "id": "m1", "name": "One", "vendor": "Acme" } },
      { "type": "upsert_model", "model": { "id": "m2", "name": "Two" } },
      { "type": "place", "id": "m1", "tier": "s" },
      { "type": "place", "id": "m2", "tier": "a" } ] },
    { "at": "2024-04-01", "actions": [ { "type": "place", "id": "m2", "tier": "s", "position": "top" } ] }
  ]
}`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llm-tierlist.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_BuildsTimeline(t *testing.T) {
	path := writeDoc(t, document)
	loader := NewTimelineLoader("", false, nil)

	timeline, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Frontier models", timeline.Title)
	require.Len(t, timeline.Tiers, 2)
	assert.Equal(t, "a", timeline.Tiers[1].Label)
	assert.Equal(t, "neutral", timeline.Tiers[1].Accent)

	require.Len(t, timeline.Snapshots, 2)
	latest := timeline.Snapshots[1]
	assert.Equal(t, "2024-04-01-1", latest.ID)
	require.Len(t, latest.Tiers["s"], 2)
	assert.Equal(t, "m2", latest.Tiers["s"][0].ID)
	assert.Empty(t, latest.Tiers["a"])

	assert.Equal(t, map[string]models.Delta{
		"m1": {Kind: models.DeltaSpot, Delta: -1},
		"m2": {Kind: models.DeltaTier, Delta: 1},
	}, timeline.Deltas[1])
	assert.False(t, loader.CacheEnabled())
}

func TestLoad_UsesCache(t *testing.T) {
	path := writeDoc(t, document)
	loader := NewTimelineLoader(filepath.Join(t.TempDir(), "cache"), true, nil)
	require.True(t, loader.CacheEnabled())

	first, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, first.Snapshots, second.Snapshots)
	assert.Equal(t, first.Deltas, second.Deltas)

	stats, err := loader.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
	assert.Equal(t, 1, stats["cache_files"])

	require.NoError(t, loader.ClearCache())
	stats, err = loader.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["cache_files"])
}

func TestLoad_ReloadsChangedDocument(t *testing.T) {
	path := writeDoc(t, document)
	loader := NewTimelineLoader(filepath.Join(t.TempDir(), "cache"), true, nil)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	updated := `{"schemaVersion": 2, "tiers": [{"id": "s"}], "changes": []}`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	timeline, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, timeline.Snapshots)
	assert.Len(t, timeline.Tiers, 1)
}

func TestLoad_Errors(t *testing.T) {
	loader := NewTimelineLoader("", false, nil)

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = loader.Load(context.Background(), writeDoc(t, "{not json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, tierlist.ErrInvalidDocument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.Load(ctx, writeDoc(t, document))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewTimelineLoader_DegradesWithoutCache(t *testing.T) {
	// a regular file where the cache directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	loader := NewTimelineLoader(filepath.Join(blocker, "cache"), true, warn)
	assert.False(t, loader.CacheEnabled())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Timeline cache disabled")

	timeline, err := loader.Load(context.Background(), writeDoc(t, document))
	require.NoError(t, err)
	assert.Len(t, timeline.Snapshots, 2)

	stats, err := loader.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, false, stats["cache_enabled"])
	assert.NoError(t, loader.ClearCache())
}
