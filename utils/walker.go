package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxWalkFileSize skips files over 100 KB during enumeration; they are
// almost never useful as LLM context and inflate every later stage.
const maxWalkFileSize = 100 * 1024

// ListProjectFiles walks the project tree and returns the project-relative
// paths of every candidate file, with default and user ignore rules
// already applied. The result feeds the scanner and the retriever.
func ListProjectFiles(rootDir string) ([]string, error) {
	ignorePatterns, err := GetIgnorePatterns(rootDir)
	if err != nil {
		return nil, err
	}

	var files []string

	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relativePath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return err
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if relativePath == "." {
			return nil
		}

		if IsDefaultIgnored(relativePath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil // Unreadable entries are skipped, not fatal
		}
		if info.Size() > maxWalkFileSize {
			return nil
		}

		if IsIgnored(relativePath, ignorePatterns) {
			return nil
		}

		files = append(files, relativePath)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
