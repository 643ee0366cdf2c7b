package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/meysamhadeli/tierlist/loader/contracts"
	"github.com/meysamhadeli/tierlist/snapshot_cache"
	"github.com/meysamhadeli/tierlist/tierlist"
	"github.com/meysamhadeli/tierlist/tierlist/models"
)

// TimelineLoader turns a tier list document on disk into a computed timeline
type TimelineLoader struct {
	cacheManager *snapshot_cache.CacheManager
	warn         tierlist.Warner
}

// NewTimelineLoader creates a loader. When the cache cannot be opened the loader warns
// and keeps working without it.
func NewTimelineLoader(cacheDir string, enableCache bool, warn tierlist.Warner) contracts.ITimelineLoader {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	loader := &TimelineLoader{warn: warn}
	if !enableCache {
		return loader
	}

	cacheManager, err := snapshot_cache.NewCacheManager(cacheDir)
	if err != nil {
		warn("Timeline cache disabled: %v", err)
		return loader
	}
	loader.cacheManager = cacheManager

	return loader
}

// Load reads, parses and replays the document at path.
func (l *TimelineLoader) Load(ctx context.Context, path string) (*models.Timeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier list: %w", err)
	}

	return l.LoadBytes(path, content)
}

// LoadBytes builds the timeline of content, which was read from path.
func (l *TimelineLoader) LoadBytes(path string, content []byte) (*models.Timeline, error) {
	if l.cacheManager != nil {
		if timeline, found := l.cacheManager.GetTimeline(path, content); found {
			return timeline, nil
		}
	}

	doc, err := tierlist.ParseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	timeline := tierlist.BuildTimeline(doc)

	if l.cacheManager != nil {
		if err := l.cacheManager.SetTimeline(path, content, timeline); err != nil {
			l.warn("Failed to cache timeline: %v", err)
		}
	}

	return timeline, nil
}

func (l *TimelineLoader) CacheEnabled() bool {
	return l.cacheManager != nil
}

// GetCacheStats returns cache statistics
func (l *TimelineLoader) GetCacheStats() (map[string]interface{}, error) {
	if l.cacheManager == nil {
		return map[string]interface{}{"cache_enabled": false}, nil
	}
	return l.cacheManager.GetCacheStats()
}

// ClearCache clears all cached timelines
func (l *TimelineLoader) ClearCache() error {
	if l.cacheManager == nil {
		return nil
	}
	return l.cacheManager.ClearCache()
}
