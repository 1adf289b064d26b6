package dependency_graph

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/codescope/codescope/dependency_graph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedScanResult() *models.ScanResult {
	// Gob omits zero values, so the fixture keeps every slice non-empty to
	// stay comparable after a round trip.
	return &models.ScanResult{
		Imports: []models.ImportEdge{
			{Source: "src/app.ts", Target: "./auth", Imports: []string{"login"}, Type: models.ImportTypeLocal, ResolvedPath: "src/auth.ts"},
		},
		Modules: []models.ModuleInfo{
			{Name: "app.ts", Path: "src/app.ts", Files: []string{"src/app.ts"}, Dependencies: []string{"src/auth.ts"}, Exports: []string{"login"}},
		},
		Graph: &models.DependencyGraph{
			Nodes: []models.GraphNode{
				{ID: "src/app.ts", Type: models.NodeTypeFile, Name: "app.ts"},
				{ID: "src/auth.ts", Type: models.NodeTypeFile, Name: "auth.ts"},
			},
			Edges: []models.GraphEdge{{From: "src/app.ts", To: "src/auth.ts", Type: "import"}},
		},
	}
}

func TestCacheManager_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.ts", "import axios from 'axios';\n")
	files := []string{"src/app.ts"}

	cacheManager, err := NewCacheManager(filepath.Join(root, ".cache"))
	require.NoError(t, err)

	_, found := cacheManager.GetScanResult(root, files)
	assert.False(t, found)

	require.NoError(t, cacheManager.SetScanResult(root, files, cachedScanResult()))

	cached, found := cacheManager.GetScanResult(root, files)
	require.True(t, found)
	assert.Equal(t, cachedScanResult(), cached)
}

func TestCacheManager_InvalidatesOnFileChange(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.ts", "import axios from 'axios';\n")
	files := []string{"src/app.ts"}

	cacheManager, err := NewCacheManager(filepath.Join(root, ".cache"))
	require.NoError(t, err)
	require.NoError(t, cacheManager.SetScanResult(root, files, cachedScanResult()))

	// Different size and mod time both invalidate.
	time.Sleep(10 * time.Millisecond)
	writeSource(t, root, "src/app.ts", "import axios from 'axios';\nimport fs from 'fs';\n")

	_, found := cacheManager.GetScanResult(root, files)
	assert.False(t, found)
}

func TestCacheManager_KeyDependsOnFileSet(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.ts", "import axios from 'axios';\n")
	writeSource(t, root, "src/other.ts", "import fs from 'fs';\n")

	cacheManager, err := NewCacheManager(filepath.Join(root, ".cache"))
	require.NoError(t, err)
	require.NoError(t, cacheManager.SetScanResult(root, []string{"src/app.ts"}, cachedScanResult()))

	_, found := cacheManager.GetScanResult(root, []string{"src/app.ts", "src/other.ts"})
	assert.False(t, found)

	// Order of the candidate list does not matter.
	key1 := cacheManager.cacheKey(root, []string{"src/app.ts", "src/other.ts"})
	key2 := cacheManager.cacheKey(root, []string{"src/other.ts", "src/app.ts"})
	assert.Equal(t, key1, key2)
}

func TestCacheManager_Clear(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "src/app.ts", "import axios from 'axios';\n")
	files := []string{"src/app.ts"}

	cacheManager, err := NewCacheManager(filepath.Join(root, ".cache"))
	require.NoError(t, err)
	require.NoError(t, cacheManager.SetScanResult(root, files, cachedScanResult()))
	require.NoError(t, cacheManager.Clear())

	_, found := cacheManager.GetScanResult(root, files)
	assert.False(t, found)

	stats, err := cacheManager.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["cache_files"])

	_ = os.RemoveAll(filepath.Join(root, ".cache"))
}
