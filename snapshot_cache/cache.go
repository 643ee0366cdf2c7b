package snapshot_cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/meysamhadeli/tierlist/tierlist"
	"github.com/meysamhadeli/tierlist/tierlist/models"
	"github.com/zeebo/xxh3"
)

const cacheSuffix = ".cache"

// CacheEntry represents a cached timeline with the metadata of the document it came from
type CacheEntry struct {
	Data      interface{}
	Timestamp time.Time
	FileSize  int64
	ModTime   time.Time
	Hash      string
}

// FileCache manages gob files keyed by document path
type FileCache struct {
	cacheDir string
	mutex    sync.RWMutex
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// CacheManager provides high-level caching operations
type CacheManager struct {
	fileCache *FileCache
	stats     *CacheStats
}

// CacheCleanupOptions defines options for cache cleanup
type CacheCleanupOptions struct {
	MaxAge   time.Duration // Remove entries older than this
	MaxFiles int           // Remove oldest entries beyond this count
}

var registerOnce sync.Once

// NewCacheManager creates a cache manager rooted at cacheDir.
// If cacheDir is empty, it defaults to ".cache" in the current working directory.
func NewCacheManager(cacheDir string) (*CacheManager, error) {
	registerOnce.Do(func() {
		gob.Register(&models.Timeline{})
	})

	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cacheDir = filepath.Join(cwd, ".cache")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cacheManager := &CacheManager{
		fileCache: &FileCache{cacheDir: cacheDir},
		stats:     &CacheStats{LastResetTime: time.Now()},
	}

	cacheManager.performAutoCleanup()

	return cacheManager, nil
}

// ContentHash fingerprints a document's bytes.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(content))
}

// generateCacheKey creates a unique cache key for a document path
func (fc *FileCache) generateCacheKey(filePath string) string {
	return fmt.Sprintf("%016x%s", xxh3.HashString(filePath), cacheSuffix)
}

func (fc *FileCache) getCachePath(cacheKey string) string {
	return filepath.Join(fc.cacheDir, cacheKey)
}

func readEntry(cachePath string) (*CacheEntry, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Get returns the cached data for filePath if it was stored for exactly this content.
// Stale or unreadable entries are removed.
func (fc *FileCache) Get(filePath string, content []byte) (interface{}, bool) {
	fc.mutex.RLock()
	cachePath := fc.getCachePath(fc.generateCacheKey(filePath))
	entry, err := readEntry(cachePath)
	fc.mutex.RUnlock()

	if err != nil {
		if !os.IsNotExist(err) {
			_ = fc.Delete(filePath)
		}
		return nil, false
	}

	if entry.Hash != ContentHash(content) {
		_ = fc.Delete(filePath)
		return nil, false
	}

	return entry.Data, true
}

// Set stores data for filePath together with the fingerprint of content.
func (fc *FileCache) Set(filePath string, content []byte, data interface{}) error {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	entry := CacheEntry{
		Data:      data,
		Timestamp: time.Now(),
		FileSize:  int64(len(content)),
		Hash:      ContentHash(content),
	}
	if fileInfo, err := os.Stat(filePath); err == nil {
		entry.ModTime = fileInfo.ModTime()
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	cachePath := fc.getCachePath(fc.generateCacheKey(filePath))
	if err := os.WriteFile(cachePath, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Delete removes a cache entry
func (fc *FileCache) Delete(filePath string) error {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	cachePath := fc.getCachePath(fc.generateCacheKey(filePath))
	if err := os.Remove(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}

	return nil
}

// GetTimeline retrieves the timeline computed from this exact document content.
func (cm *CacheManager) GetTimeline(docPath string, content []byte) (*models.Timeline, bool) {
	data, found := cm.fileCache.Get(docPath, content)
	if !found {
		cm.recordCacheMiss()
		return nil, false
	}

	timeline, ok := data.(*models.Timeline)
	if !ok {
		cm.recordCacheMiss()
		return nil, false
	}

	cm.recordCacheHit()
	return restore(timeline), true
}

// SetTimeline stores a computed timeline for a document's content.
func (cm *CacheManager) SetTimeline(docPath string, content []byte, timeline *models.Timeline) error {
	return cm.fileCache.Set(docPath, content, timeline)
}

// InvalidateTimeline drops the cached timeline of a document.
func (cm *CacheManager) InvalidateTimeline(docPath string) error {
	return cm.fileCache.Delete(docPath)
}

// restore brings back the empty tiers and delta maps gob leaves out.
func restore(timeline *models.Timeline) *models.Timeline {
	for i := range timeline.Snapshots {
		timeline.Snapshots[i] = tierlist.EnsureTiers(timeline.Snapshots[i], timeline.Tiers)
	}
	for len(timeline.Deltas) < len(timeline.Snapshots) {
		timeline.Deltas = append(timeline.Deltas, nil)
	}
	for i := range timeline.Deltas {
		if timeline.Deltas[i] == nil {
			timeline.Deltas[i] = make(map[string]models.Delta)
		}
	}
	return timeline
}

// GetCacheStats returns cache statistics
func (cm *CacheManager) GetCacheStats() (map[string]interface{}, error) {
	files, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var totalSize int64
	var count int
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != cacheSuffix {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		totalSize += info.Size()
		count++
	}

	stats := cm.GetPerformanceStats()
	stats["cache_enabled"] = true
	stats["cache_files"] = count
	stats["total_size"] = totalSize
	stats["cache_dir"] = cm.fileCache.cacheDir

	return stats, nil
}

// CleanupCache removes entries older than MaxAge, then the oldest entries beyond MaxFiles.
// It returns how many files were removed.
func (cm *CacheManager) CleanupCache(options CacheCleanupOptions) (int, error) {
	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	type fileInfo struct {
		path     string
		entryAge time.Time
	}

	var fileInfos []fileInfo
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != cacheSuffix {
			continue
		}

		cachePath := filepath.Join(cm.fileCache.cacheDir, file.Name())
		info, err := file.Info()
		if err != nil {
			continue
		}

		// Fallback to file modification time
		entryAge := info.ModTime()
		if entry, err := readEntry(cachePath); err == nil {
			entryAge = entry.Timestamp
		}

		fileInfos = append(fileInfos, fileInfo{path: cachePath, entryAge: entryAge})
	}

	// Oldest first
	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].entryAge.Before(fileInfos[j].entryAge)
	})

	var cutoff time.Time
	if options.MaxAge > 0 {
		cutoff = time.Now().Add(-options.MaxAge)
	}

	excess := 0
	if options.MaxFiles > 0 && len(fileInfos) > options.MaxFiles {
		excess = len(fileInfos) - options.MaxFiles
	}

	deleted := 0
	for i, f := range fileInfos {
		expired := !cutoff.IsZero() && f.entryAge.Before(cutoff)
		if !expired && i >= excess {
			continue
		}
		if err := os.Remove(f.path); err == nil {
			deleted++
		}
	}

	return deleted, nil
}

// CleanExpiredCache removes cache entries older than specified duration
func (cm *CacheManager) CleanExpiredCache(maxAge time.Duration) error {
	_, err := cm.CleanupCache(CacheCleanupOptions{MaxAge: maxAge})
	return err
}

// performAutoCleanup applies conservative limits on every start
func (cm *CacheManager) performAutoCleanup() {
	_, _ = cm.CleanupCache(CacheCleanupOptions{
		MaxAge:   7 * 24 * time.Hour,
		MaxFiles: 100,
	})
}

// ClearCache removes every cache entry. Other files in the directory are left alone.
func (cm *CacheManager) ClearCache() error {
	cm.fileCache.mutex.Lock()
	defer cm.fileCache.mutex.Unlock()

	files, err := os.ReadDir(cm.fileCache.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != cacheSuffix {
			continue
		}
		if err := os.Remove(filepath.Join(cm.fileCache.cacheDir, file.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", file.Name(), err)
		}
	}

	cm.ResetPerformanceStats()
	return nil
}
