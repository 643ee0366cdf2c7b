package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/meysamhadeli/tierlist/config"
	"github.com/meysamhadeli/tierlist/renderer"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/meysamhadeli/tierlist/timeline"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "assets", "llm-tierlist.json")
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs the root command against the sample document with the cache off.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))

	defaults := [][]string{
		{"--data", samplePath(t)},
		{"--enable_cache=false"},
		{"--today", "2024-10-01"},
	}
	for _, flag := range defaults {
		if !hasFlag(args, flag[0]) {
			args = append(args, flag...)
		}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func hasFlag(args []string, flag string) bool {
	name, _, _ := strings.Cut(flag, "=")
	for _, arg := range args {
		if arg == name || strings.HasPrefix(arg, name+"=") {
			return true
		}
	}
	return false
}

func TestShow_Latest(t *testing.T) {
	out, err := executeCommand(t, "", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "LLM tier list")
	assert.Contains(t, out, "Reasoning models")
	assert.Contains(t, out, "15 September 2024")
	assert.Contains(t, out, "Latest")
	assert.Contains(t, out, "o1-preview")
	assert.Contains(t, out, "1 October 2024")
	assert.Contains(t, out, "+1 more")
}

func TestShow_DateAndIndex(t *testing.T) {
	out, err := executeCommand(t, "", "show", "--date", "2024-04-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Spring reshuffle")
	assert.Contains(t, out, "10 March 2024")
	assert.Contains(t, out, "Claude 2 retires in favour of the Claude 3 family.")
	assert.NotContains(t, out, "Latest")

	out, err = executeCommand(t, "", "show", "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "First board")
	assert.Contains(t, out, "Claude 2")

	// before the first snapshot the scrubber clamps to it
	out, err = executeCommand(t, "", "show", "--date", "2020-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "First board")
}

func TestShow_Errors(t *testing.T) {
	_, err := executeCommand(t, "", "show", "--date", "March 2024")
	assert.ErrorIs(t, err, timeline.ErrInvalidDate)

	_, err = executeCommand(t, "", "show", "--index", "9")
	assert.Error(t, err)

	_, err = executeCommand(t, "", "show", "--data", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTimeline(t *testing.T) {
	out, err := executeCommand(t, "", "timeline")
	require.NoError(t, err)

	for _, label := range []string{"First board", "Spring reshuffle", "Omni", "Reasoning models", "Latest"} {
		assert.Contains(t, out, label)
	}
}

func TestDeltas(t *testing.T) {
	out, err := executeCommand(t, "", "deltas", "--index", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "GPT-4o")
	assert.Contains(t, out, "New in this snapshot")
	assert.Contains(t, out, "Moved down 1 tier since last snapshot")
	assert.Contains(t, out, "Moved down 1 spot since last snapshot")
	assert.NotContains(t, out, "Claude 3 Opus")

	out, err = executeCommand(t, "", "deltas", "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "First snapshot")
}

func TestModel(t *testing.T) {
	out, err := executeCommand(t, "", "model", "claude-3-opus")
	require.NoError(t, err)
	assert.Contains(t, out, "Claude 3 Opus")
	assert.Contains(t, out, "Best at nuanced writing")
	assert.Contains(t, out, "10 March 2024")

	_, err = executeCommand(t, "", "model", "claude-2")
	assert.ErrorIs(t, err, renderer.ErrModelNotFound)

	out, err = executeCommand(t, "", "model", "claude-2", "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Great with long documents.")
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.json")
	out, err := executeCommand(t, "", "export", "--pretty", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 4 snapshots")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var exported models.Timeline
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported.Snapshots, 4)
	require.Len(t, exported.Deltas, 4)
	assert.Equal(t, "2024-03-10-1", exported.Snapshots[1].ID)
	assert.Equal(t, models.Delta{Kind: models.DeltaTier, Delta: -1}, exported.Deltas[2]["gpt-4"])
	assert.Empty(t, exported.Snapshots[3].Tiers["c"])

	out, err = executeCommand(t, "", "export")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Equal(t, "LLM tier list", exported.Title)
}

func TestResetCache(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "cache")

	out, err := executeCommand(t, "", "reset-cache", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is disabled")

	_, err = executeCommand(t, "", "show", "--enable_cache=true", "--cache_dir", cacheDir)
	require.NoError(t, err)

	out, err = executeCommand(t, "", "reset-cache", "--stats", "--enable_cache=true", "--cache_dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cache Statistics")
	assert.Contains(t, out, "Cached Timelines: 1")
	assert.Contains(t, out, "Cached Config Files:")

	out, err = executeCommand(t, "n\n", "reset-cache", "--enable_cache=true", "--cache_dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cache reset cancelled.")

	out, err = executeCommand(t, "y\n", "reset-cache", "--enable_cache=true", "--cache_dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, out, "successfully reset")
	assert.Equal(t, 0, config.GetConfigCacheStats()["cached_files"])

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBrowse(t *testing.T) {
	input := strings.Join([]string{
		"/next",
		"/prev",
		"/date 2024-04-01",
		"/model claude-3-opus",
		"/deltas",
		"/bogus",
		"/index 9",
		"/exit",
	}, "\n") + "\n"

	out, err := executeCommand(t, input, "browse")
	require.NoError(t, err)

	assert.Contains(t, out, "Already at the latest snapshot.")
	assert.Contains(t, out, "Omni")
	assert.Contains(t, out, "Spring reshuffle")
	assert.Contains(t, out, "Best at nuanced writing")
	assert.Contains(t, out, "Mistral Large")
	assert.Contains(t, out, `unknown command "/bogus"`)
	assert.Contains(t, out, "usage: /index <0-3>")
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "tierlist version 0.3.0")
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llm-tierlist.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestShow_MalformedSnapshotDate(t *testing.T) {
	path := writeDocument(t, `{
	  "schemaVersion": 2,
	  "tiers": [{"id": "s", "label": "S"}],
	  "changes": [
	    {"at": "2023-1-05", "actions": [{"type": "place", "id": "early", "tier": "s"}]},
	    {"at": "2024-02-01", "actions": [{"type": "place", "id": "later", "tier": "s"}]}
	  ]
	}`)

	out, err := executeCommand(t, "", "show", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 February 2024")
	assert.Contains(t, out, "later")
	assert.Contains(t, out, "Latest")

	out, err = executeCommand(t, "", "show", "--data", path, "--index", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "2023-1-05")
	assert.Contains(t, out, "early")
}

func TestShow_NoUsableDates(t *testing.T) {
	path := writeDocument(t, `{
	  "schemaVersion": 2,
	  "tiers": [{"id": "s", "label": "S"}],
	  "changes": [{"at": "soon", "actions": [{"type": "place", "id": "only", "tier": "s"}]}]
	}`)

	out, err := executeCommand(t, "", "show", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, "only")
	assert.NotContains(t, out, "◆")

	_, err = executeCommand(t, "", "show", "--data", path, "--date", "2024-01-01")
	assert.ErrorIs(t, err, timeline.ErrInvalidDate)
}
