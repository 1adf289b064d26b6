package retrieval

import (
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/codescope/codescope/retrieval/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// LexicalFileScorer scores candidate files against a query and retrieves
// their content through a fixed-capacity LRU cache.
type LexicalFileScorer struct {
	rootPath     string
	contentCache *lru.Cache[string, models.FileContent]
	diskReads    atomic.Int64
}

// NewLexicalFileScorer initializes a scorer rooted at the project
// directory. cacheCapacity <= 0 falls back to the default.
func NewLexicalFileScorer(rootPath string, cacheCapacity int) (*LexicalFileScorer, error) {
	if cacheCapacity <= 0 {
		cacheCapacity = models.DefaultCacheCapacity
	}
	cache, err := lru.New[string, models.FileContent](cacheCapacity)
	if err != nil {
		return nil, err
	}
	return &LexicalFileScorer{
		rootPath:     rootPath,
		contentCache: cache,
	}, nil
}

// RetrieveFiles fetches content for the scored files, serving from the
// cache when possible. Files larger than twice the configured maximum are
// skipped; read failures drop the file from the result. Neither is fatal.
func (scorer *LexicalFileScorer) RetrieveFiles(scoredFiles []models.ScoredFile, config models.RetrieveConfig) []models.FileContent {
	maxLength := config.MaxContentLength
	if maxLength <= 0 {
		maxLength = models.DefaultMaxContentLength
	}

	results := make([]models.FileContent, 0, len(scoredFiles))

	for _, scored := range scoredFiles {
		if cached, found := scorer.contentCache.Get(scored.Path); found {
			results = append(results, cached)
			continue
		}

		absPath := filepath.Join(scorer.rootPath, filepath.FromSlash(scored.Path))

		info, err := os.Stat(absPath)
		if err != nil {
			log.Printf("Warning: failed to stat %s: %v", scored.Path, err)
			continue
		}
		if info.Size() > int64(2*maxLength) {
			log.Printf("Skipping %s: size %d exceeds limit", scored.Path, info.Size())
			continue
		}

		raw, err := os.ReadFile(absPath)
		if err != nil {
			log.Printf("Warning: failed to read %s: %v", scored.Path, err)
			continue
		}
		scorer.diskReads.Add(1)

		content := string(raw)
		truncated := false
		if len(content) > maxLength {
			content = content[:maxLength]
			truncated = true
		}

		fileContent := models.FileContent{
			Path:      scored.Path,
			Content:   content,
			Truncated: truncated,
			Size:      info.Size(),
		}
		scorer.contentCache.Add(scored.Path, fileContent)
		results = append(results, fileContent)
	}

	return results
}

// ClearCache empties the content cache.
func (scorer *LexicalFileScorer) ClearCache() {
	scorer.contentCache.Purge()
}

// DiskReads reports how many files were read from disk, cache misses only.
func (scorer *LexicalFileScorer) DiskReads() int64 {
	return scorer.diskReads.Load()
}

// CacheLen reports the number of cached entries.
func (scorer *LexicalFileScorer) CacheLen() int {
	return scorer.contentCache.Len()
}

// CachedPaths lists the cached paths in eviction order, oldest first.
func (scorer *LexicalFileScorer) CachedPaths() []string {
	return scorer.contentCache.Keys()
}
