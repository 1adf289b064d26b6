package utils

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// languageByExtension maps file extensions to chroma lexer names.
var languageByExtension = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".py":   "python",
	".go":   "go",
	".java": "java",
	".cs":   "csharp",
	".rs":   "rust",
	".rb":   "ruby",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".md":   "markdown",
	".sh":   "bash",
	".sql":  "sql",
}

// DetectLanguageFromPath returns the highlighter language for a file path,
// falling back to plain text.
func DetectLanguageFromPath(filePath string) string {
	if lang, ok := languageByExtension[strings.ToLower(path.Ext(filePath))]; ok {
		return lang
	}
	return "text"
}

// HighlightCode renders source code with terminal syntax highlighting.
func HighlightCode(code string, language string, theme string) (string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, code, language, "terminal256", theme); err != nil {
		return "", fmt.Errorf("failed to highlight code: %w", err)
	}
	return buf.String(), nil
}

// RenderFileWithContext prints a retrieved file line by line with
// highlighting, checking for cancellation between lines so a long file
// can be interrupted.
func RenderFileWithContext(ctx context.Context, filePath string, content string, theme string) error {
	language := DetectLanguageFromPath(filePath)

	for i, line := range strings.Split(content, "\n") {
		if i%5 == 0 {
			select {
			case <-ctx.Done():
				fmt.Println("\nOutput interrupted...")
				return ctx.Err()
			default:
			}
		}

		rendered, err := HighlightCode(line+"\n", language, theme)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
	}

	return nil
}
