package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsDocumentWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llm-tierlist.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0644))

	watcher, err := NewWatcher(path)
	require.NoError(t, err)
	watcher.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, func() { changes <- struct{}{} }, nil)
	}()

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	select {
	case <-changes:
		t.Fatal("unexpected change for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}

	// a burst of writes is reported once
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(document), 0644))
	}
	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "llm-tierlist.json"))
	assert.Error(t, err)
}
