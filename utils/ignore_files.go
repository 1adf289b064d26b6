package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ignoreCacheEntry holds cached ignore patterns with metadata
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

// Global cache for ignore-file patterns
var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// GetIgnorePatterns reads and returns the patterns from the
// .codescope-ignore file. If the file does not exist, it returns an empty
// pattern list. Parsed patterns are cached per mod time.
func GetIgnorePatterns(cwd string) ([]string, error) {
	ignorePath := filepath.Join(cwd, ".codescope-ignore")

	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking .codescope-ignore: %w", err)
	}

	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.patterns, nil
		}
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .codescope-ignore: %w", err)
	}

	// Drop patterns that the default rules already cover
	var validPatterns []string
	for _, pattern := range patterns {
		if !IsDefaultIgnored(pattern) {
			validPatterns = append(validPatterns, pattern)
		}
	}

	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: validPatterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return validPatterns, nil
}

// defaultIgnorePatterns cover VCS metadata, build output and binary assets.
var defaultIgnorePatterns = []string{
	"codescope-config",
	".codescope-cache",
	".git",
	".svn",
	".idea",
	".vscode",
	".cache",
	"bin",
	"obj",
	"dist",
	"out",
	"node_modules",
	"*.exe",
	"*.dll",
	"*.so",
	"*.log",
	"*.lock",
	"*.bak",
	".jpg",
	".jpeg",
	".png",
	".gif",
	".mp3",
	".mp4",
	".wav",
	".avi",
	".mov",
	".pdf",
	".zip",
	".tar",
	".gz",
	".drawio",
	".excalidraw",
}

func IsDefaultIgnored(path string) bool {
	parts := strings.Split(path, string(filepath.Separator))

	for _, part := range parts {
		part = strings.ToLower(part)
		for _, pattern := range defaultIgnorePatterns {
			if strings.HasPrefix(pattern, "*") {
				suffix := strings.TrimPrefix(pattern, "*")
				if strings.HasSuffix(part, suffix) {
					return true
				}
			} else {
				if strings.HasPrefix(part, pattern) || strings.HasSuffix(part, pattern) {
					return true
				}
			}
		}
	}
	return false
}

// readIgnoreFile reads the ignore file and returns its patterns.
func readIgnoreFile(ignorePath string) ([]string, error) {
	content, err := os.ReadFile(ignorePath)
	if err != nil {
		return nil, err
	}
	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsIgnored checks if a path matches any of the user-supplied patterns.
func IsIgnored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		match, _ := filepath.Match(pattern, path)
		if match {
			return true
		}
		// Patterns like "dir/" ignore entire directories
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(path, pattern) {
			return true
		}
	}
	return false
}

// ClearIgnoreCache clears all cached ignore patterns.
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
