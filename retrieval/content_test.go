package retrieval

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codescope/codescope/retrieval/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContentFile(t *testing.T, root, relativePath, content string) {
	t.Helper()
	absPath := filepath.Join(root, filepath.FromSlash(relativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644))
}

func TestRetrieveFiles_CacheServesRepeatReads(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "src/app.ts", "export const app = 1;\n")

	scorer, err := NewLexicalFileScorer(root, 10)
	require.NoError(t, err)

	scored := []models.ScoredFile{{Path: "src/app.ts"}}

	first := scorer.RetrieveFiles(scored, models.RetrieveConfig{})
	require.Len(t, first, 1)
	assert.Equal(t, int64(1), scorer.DiskReads())

	second := scorer.RetrieveFiles(scored, models.RetrieveConfig{})
	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0])
	assert.Equal(t, int64(1), scorer.DiskReads(), "second retrieval must be served from cache")
}

func TestRetrieveFiles_LRUEviction(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "a.ts", "a\n")
	writeContentFile(t, root, "b.ts", "b\n")
	writeContentFile(t, root, "c.ts", "c\n")

	scorer, err := NewLexicalFileScorer(root, 2)
	require.NoError(t, err)

	scorer.RetrieveFiles([]models.ScoredFile{{Path: "a.ts"}}, models.RetrieveConfig{})
	scorer.RetrieveFiles([]models.ScoredFile{{Path: "b.ts"}}, models.RetrieveConfig{})
	scorer.RetrieveFiles([]models.ScoredFile{{Path: "c.ts"}}, models.RetrieveConfig{})

	assert.Equal(t, 2, scorer.CacheLen())
	assert.Equal(t, []string{"b.ts", "c.ts"}, scorer.CachedPaths())

	// The evicted entry costs another disk read when requested again.
	require.Equal(t, int64(3), scorer.DiskReads())
	scorer.RetrieveFiles([]models.ScoredFile{{Path: "a.ts"}}, models.RetrieveConfig{})
	assert.Equal(t, int64(4), scorer.DiskReads())
}

func TestRetrieveFiles_Truncation(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "big.ts", strings.Repeat("x", 150))

	scorer, err := NewLexicalFileScorer(root, 10)
	require.NoError(t, err)

	results := scorer.RetrieveFiles([]models.ScoredFile{{Path: "big.ts"}}, models.RetrieveConfig{MaxContentLength: 100})
	require.Len(t, results, 1)
	assert.True(t, results[0].Truncated)
	assert.Len(t, results[0].Content, 100)
	assert.Equal(t, int64(150), results[0].Size)
}

func TestRetrieveFiles_OversizedFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "huge.ts", strings.Repeat("x", 250))

	scorer, err := NewLexicalFileScorer(root, 10)
	require.NoError(t, err)

	results := scorer.RetrieveFiles([]models.ScoredFile{{Path: "huge.ts"}}, models.RetrieveConfig{MaxContentLength: 100})
	assert.Empty(t, results)
	assert.Equal(t, int64(0), scorer.DiskReads())
}

func TestRetrieveFiles_MissingFileOmitted(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "real.ts", "ok\n")

	scorer, err := NewLexicalFileScorer(root, 10)
	require.NoError(t, err)

	results := scorer.RetrieveFiles([]models.ScoredFile{
		{Path: "real.ts"},
		{Path: "ghost.ts"},
	}, models.RetrieveConfig{})
	require.Len(t, results, 1)
	assert.Equal(t, "real.ts", results[0].Path)
}

func TestClearCache(t *testing.T) {
	root := t.TempDir()
	writeContentFile(t, root, "a.ts", "a\n")

	scorer, err := NewLexicalFileScorer(root, 10)
	require.NoError(t, err)

	scorer.RetrieveFiles([]models.ScoredFile{{Path: "a.ts"}}, models.RetrieveConfig{})
	require.Equal(t, 1, scorer.CacheLen())

	scorer.ClearCache()
	assert.Equal(t, 0, scorer.CacheLen())
}
