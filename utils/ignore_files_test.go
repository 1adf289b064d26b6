package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDefaultIgnored(t *testing.T) {
	assert.True(t, IsDefaultIgnored("node_modules/react/index.js"))
	assert.True(t, IsDefaultIgnored(".git/HEAD"))
	assert.True(t, IsDefaultIgnored("dist/app.js"))
	assert.True(t, IsDefaultIgnored("server.exe"))
	assert.True(t, IsDefaultIgnored("debug.log"))

	assert.False(t, IsDefaultIgnored("src/app.ts"))
	assert.False(t, IsDefaultIgnored("config/settings.py"))
}

func TestGetIgnorePatterns_MissingFile(t *testing.T) {
	defer ClearIgnoreCache()

	patterns, err := GetIgnorePatterns(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestGetIgnorePatterns_ParsesAndFilters(t *testing.T) {
	defer ClearIgnoreCache()
	root := t.TempDir()

	content := `# comment
generated/

*.snap
node_modules
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".codescope-ignore"), []byte(content), 0644))

	patterns, err := GetIgnorePatterns(root)
	require.NoError(t, err)

	// Comments and blanks are dropped; node_modules is already covered by
	// the default rules.
	assert.Equal(t, []string{"generated/", "*.snap"}, patterns)
}

func TestGetIgnorePatterns_CacheInvalidatesOnModTime(t *testing.T) {
	defer ClearIgnoreCache()
	root := t.TempDir()
	ignorePath := filepath.Join(root, ".codescope-ignore")

	require.NoError(t, os.WriteFile(ignorePath, []byte("*.snap\n"), 0644))
	patterns, err := GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.snap"}, patterns)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(ignorePath, []byte("*.snap\n*.tmp\n"), 0644))

	patterns, err = GetIgnorePatterns(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.snap", "*.tmp"}, patterns)
}

func TestIsIgnored(t *testing.T) {
	patterns := []string{"generated/", "*.snap"}

	assert.True(t, IsIgnored("generated/schema.ts", patterns))
	assert.True(t, IsIgnored("widget.snap", patterns))
	assert.False(t, IsIgnored("src/app.ts", patterns))
}
