package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWalkFile(t *testing.T, root, relativePath, content string) {
	t.Helper()
	absPath := filepath.Join(root, filepath.FromSlash(relativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644))
}

func TestListProjectFiles(t *testing.T) {
	defer ClearIgnoreCache()
	root := t.TempDir()

	writeWalkFile(t, root, "src/app.ts", "export {}\n")
	writeWalkFile(t, root, "src/auth/service.ts", "export {}\n")
	writeWalkFile(t, root, "node_modules/lib/index.js", "module.exports = {}\n")
	writeWalkFile(t, root, ".git/HEAD", "ref: refs/heads/main\n")
	writeWalkFile(t, root, "app.log", "noise\n")

	files, err := ListProjectFiles(root)
	require.NoError(t, err)

	assert.Contains(t, files, "src/app.ts")
	assert.Contains(t, files, "src/auth/service.ts")
	assert.NotContains(t, files, "node_modules/lib/index.js")
	assert.NotContains(t, files, ".git/HEAD")
	assert.NotContains(t, files, "app.log")
}

func TestListProjectFiles_SkipsOversizedFiles(t *testing.T) {
	defer ClearIgnoreCache()
	root := t.TempDir()

	writeWalkFile(t, root, "small.ts", "export {}\n")
	writeWalkFile(t, root, "huge.ts", strings.Repeat("x", maxWalkFileSize+1))

	files, err := ListProjectFiles(root)
	require.NoError(t, err)
	assert.Contains(t, files, "small.ts")
	assert.NotContains(t, files, "huge.ts")
}

func TestListProjectFiles_HonorsIgnoreFile(t *testing.T) {
	defer ClearIgnoreCache()
	root := t.TempDir()

	writeWalkFile(t, root, ".codescope-ignore", "generated/\n*.snap\n")
	writeWalkFile(t, root, "src/app.ts", "export {}\n")
	writeWalkFile(t, root, "generated/schema.ts", "export {}\n")
	writeWalkFile(t, root, "widget.snap", "{}\n")

	files, err := ListProjectFiles(root)
	require.NoError(t, err)
	assert.Contains(t, files, "src/app.ts")
	assert.NotContains(t, files, "generated/schema.ts")
	assert.NotContains(t, files, "widget.snap")
}
