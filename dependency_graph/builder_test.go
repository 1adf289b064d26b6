package dependency_graph

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/codescope/codescope/dependency_graph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, root, relativePath, content string) {
	t.Helper()
	absPath := filepath.Join(root, filepath.FromSlash(relativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644))
}

func fixtureProject(t *testing.T) (string, []string) {
	t.Helper()
	root := t.TempDir()

	writeSource(t, root, "src/auth/service.ts", `
import { getSession } from './session';
import express from 'express';
`)
	writeSource(t, root, "src/auth/session.ts", `
import axios from 'axios';
`)
	writeSource(t, root, "src/api/routes.ts", `
import { login } from '../auth/service';
`)

	return root, []string{"src/auth/service.ts", "src/auth/session.ts", "src/api/routes.ts"}
}

func TestScanProject_EndToEnd(t *testing.T) {
	root, files := fixtureProject(t)

	builder := NewGraphBuilderWithoutCache()
	result, err := builder.ScanProject(root, files)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Len(t, result.Imports, 4)

	byTarget := make(map[string]models.ImportEdge)
	for _, imp := range result.Imports {
		byTarget[imp.Target] = imp
	}

	session := byTarget["./session"]
	assert.Equal(t, models.ImportTypeLocal, session.Type)
	assert.Equal(t, "src/auth/session.ts", session.ResolvedPath)

	assert.Equal(t, models.ImportTypeFramework, byTarget["express"].Type)
	assert.Equal(t, models.ImportTypeExternal, byTarget["axios"].Type)

	service := byTarget["../auth/service"]
	assert.Equal(t, models.ImportTypeLocal, service.Type)
	assert.Equal(t, "src/auth/service.ts", service.ResolvedPath)

	require.Len(t, result.Modules, 2)

	require.NotNil(t, result.Graph)
	assert.True(t, result.Graph.HasNode("src/auth"))
	assert.True(t, result.Graph.HasNode("src/api"))
	assert.True(t, result.Graph.HasNode("express"))
}

func TestScanProject_GraphEdgesCloseOverNodes(t *testing.T) {
	root, files := fixtureProject(t)

	builder := NewGraphBuilderWithoutCache()
	result, err := builder.ScanProject(root, files)
	require.NoError(t, err)

	for _, edge := range result.Graph.Edges {
		assert.True(t, result.Graph.HasNode(edge.From), "missing node %s", edge.From)
		assert.True(t, result.Graph.HasNode(edge.To), "missing node %s", edge.To)
	}
}

func TestScanProject_UnreadableFileTreatedAsZeroImports(t *testing.T) {
	root, files := fixtureProject(t)
	files = append(files, "src/ghost.ts")

	builder := NewGraphBuilderWithoutCache()
	result, err := builder.ScanProject(root, files)
	require.NoError(t, err)
	assert.Len(t, result.Imports, 4)
	assert.False(t, result.Graph.HasNode("src/ghost.ts"))
}

func TestScanProject_ManyFilesAcrossBatches(t *testing.T) {
	root := t.TempDir()

	var files []string
	for i := 0; i < 2*batchSize+7; i++ {
		relativePath := fmt.Sprintf("src/gen/file%03d.ts", i)
		writeSource(t, root, relativePath, "import axios from 'axios';\n")
		files = append(files, relativePath)
	}

	builder := NewGraphBuilderWithoutCache()
	result, err := builder.ScanProject(root, files)
	require.NoError(t, err)
	assert.Len(t, result.Imports, len(files))
}

func TestScanProject_CacheReuse(t *testing.T) {
	root, files := fixtureProject(t)

	builder, err := NewGraphBuilderWithCacheDir(filepath.Join(root, ".cache"))
	require.NoError(t, err)

	first, err := builder.ScanProject(root, files)
	require.NoError(t, err)

	second, err := builder.ScanProject(root, files)
	require.NoError(t, err)
	require.Len(t, second.Imports, len(first.Imports))
	require.Len(t, second.Modules, len(first.Modules))
	assert.Len(t, second.Graph.Nodes, len(first.Graph.Nodes))
	assert.Len(t, second.Graph.Edges, len(first.Graph.Edges))

	stats, err := builder.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, true, stats["cache_enabled"])
	assert.Equal(t, 1, stats["cache_files"])

	require.NoError(t, builder.ClearCache())
	stats, err = builder.GetCacheStats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats["cache_files"])
}
