package dependency_graph

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/codescope/codescope/dependency_graph/models"
	"github.com/zeebo/xxh3"
)

// fileState captures what must stay unchanged for a cached scan to remain
// valid.
type fileState struct {
	ModTime time.Time
	Size    int64
}

// cacheEntry is the gob-persisted scan result plus the file states it was
// built from.
type cacheEntry struct {
	Timestamp time.Time
	Files     map[string]fileState
	Result    *models.ScanResult
}

// CacheManager persists scan results across runs. A cached result is an
// optimization only: any file change invalidates it and the project is
// rescanned from scratch.
type CacheManager struct {
	cacheDir string
}

// NewCacheManager creates the cache directory if needed. An empty cacheDir
// defaults to ".codescope-cache" under the working directory.
func NewCacheManager(cacheDir string) (*CacheManager, error) {
	if cacheDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cacheDir = filepath.Join(cwd, ".codescope-cache")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &CacheManager{cacheDir: cacheDir}, nil
}

// cacheKey hashes the root path and the sorted candidate list so that a
// changed file set maps to a different cache file.
func (cm *CacheManager) cacheKey(rootPath string, files []string) string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)
	sum := xxh3.HashString(rootPath + "\x00" + strings.Join(sorted, "\x00"))
	return fmt.Sprintf("scan_%016x.cache", sum)
}

func (cm *CacheManager) cachePath(key string) string {
	return filepath.Join(cm.cacheDir, key)
}

// GetScanResult returns a cached scan result when every scanned file still
// has the mod time and size recorded at cache time.
func (cm *CacheManager) GetScanResult(rootPath string, files []string) (*models.ScanResult, bool) {
	data, err := os.ReadFile(cm.cachePath(cm.cacheKey(rootPath, files)))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entry); err != nil {
		return nil, false
	}

	for relativePath, state := range entry.Files {
		info, err := os.Stat(filepath.Join(rootPath, filepath.FromSlash(relativePath)))
		if err != nil || !info.ModTime().Equal(state.ModTime) || info.Size() != state.Size {
			os.Remove(cm.cachePath(cm.cacheKey(rootPath, files)))
			return nil, false
		}
	}

	return entry.Result, true
}

// SetScanResult stores a scan result together with the current state of
// every scanned file.
func (cm *CacheManager) SetScanResult(rootPath string, files []string, result *models.ScanResult) error {
	states := make(map[string]fileState, len(files))
	for _, relativePath := range files {
		info, err := os.Stat(filepath.Join(rootPath, filepath.FromSlash(relativePath)))
		if err != nil {
			// A file that vanished mid-scan makes the result uncacheable.
			return fmt.Errorf("failed to stat %s: %w", relativePath, err)
		}
		states[relativePath] = fileState{ModTime: info.ModTime(), Size: info.Size()}
	}

	entry := cacheEntry{
		Timestamp: time.Now(),
		Files:     states,
		Result:    result,
	}

	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(&entry); err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := os.WriteFile(cm.cachePath(cm.cacheKey(rootPath, files)), buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// Clear removes all cached scan results.
func (cm *CacheManager) Clear() error {
	entries, err := os.ReadDir(cm.cacheDir)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".cache") {
			continue
		}
		os.Remove(filepath.Join(cm.cacheDir, entry.Name()))
	}

	return nil
}

// Stats reports cache file count and total size.
func (cm *CacheManager) Stats() (map[string]interface{}, error) {
	entries, err := os.ReadDir(cm.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var totalSize int64
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		totalSize += info.Size()
		count++
	}

	stats := make(map[string]interface{})
	stats["cache_dir"] = cm.cacheDir
	stats["cache_files"] = count
	stats["total_size"] = totalSize

	return stats, nil
}
