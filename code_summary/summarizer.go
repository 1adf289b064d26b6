package code_summary

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/codescope/codescope/embed_data"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// supportedLanguage maps a file extension to a summarizer language.
func supportedLanguage(filePath string) string {
	idx := strings.LastIndex(filePath, ".")
	if idx < 0 {
		return ""
	}
	switch strings.ToLower(filePath[idx:]) {
	case ".go":
		return "go"
	case ".js", ".jsx", ".mjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".py":
		return "python"
	case ".java":
		return "java"
	case ".cs":
		return "csharp"
	case ".rs":
		return "rust"
	default:
		return ""
	}
}

// SummarizeFile extracts the structural elements of a source file using
// tree-sitter queries. Unsupported languages fall back to the file's
// first line; Rust falls back to regex extraction pending tree-sitter
// bindings.
func SummarizeFile(filePath string, sourceCode []byte) []string {
	var elements []string

	var lang *sitter.Language
	var query []byte

	switch supportedLanguage(filePath) {
	case "go":
		lang = golang.GetLanguage()
		query = embed_data.GoQuery
	case "javascript":
		lang = javascript.GetLanguage()
		query = embed_data.JavascriptQuery
	case "typescript":
		lang = typescript.GetLanguage()
		query = embed_data.TypescriptQuery
	case "python":
		lang = python.GetLanguage()
		query = embed_data.PythonQuery
	case "java":
		lang = java.GetLanguage()
		query = embed_data.JavaQuery
	case "csharp":
		lang = csharp.GetLanguage()
		query = embed_data.CSharpQuery
	case "rust":
		elements = append(elements, filePath)
		elements = append(elements, extractRustStructure(string(sourceCode)))
		return elements
	default:
		elements = append(elements, filePath)
		lines := strings.Split(string(sourceCode), "\n")
		elements = append(elements, lines[0])
		return elements
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree := parser.Parse(nil, sourceCode)

	queries := make(map[string]string)
	if err := json.Unmarshal(query, &queries); err != nil {
		log.Printf("Warning: failed to parse query set for %s: %v", filePath, err)
		return []string{filePath}
	}

	elements = append(elements, filePath)

	for tag, queryStr := range queries {
		compiled, err := sitter.NewQuery([]byte(queryStr), lang)
		if err != nil {
			log.Printf("Warning: failed to compile %s query: %v", tag, err)
			continue
		}

		cursor := sitter.NewQueryCursor()
		cursor.Exec(compiled, tree.RootNode())

		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			for _, capture := range match.Captures {
				elements = append(elements, fmt.Sprintf("%s: %s", tag, capture.Node.Content(sourceCode)))
			}
		}
	}

	return elements
}

// extractRustStructure extracts basic Rust code structure using regex
// patterns.
func extractRustStructure(sourceCode string) string {
	var elements []string

	patterns := []struct {
		tag string
		re  *regexp.Regexp
	}{
		{"function", regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+(\w+)`)},
		{"struct", regexp.MustCompile(`^\s*(?:pub\s+)?struct\s+(\w+)`)},
		{"enum", regexp.MustCompile(`^\s*(?:pub\s+)?enum\s+(\w+)`)},
		{"trait", regexp.MustCompile(`^\s*(?:pub\s+)?trait\s+(\w+)`)},
		{"impl", regexp.MustCompile(`^\s*impl(?:\s*<[^>]*>)?\s+(?:\w+\s+for\s+)?(\w+)`)},
		{"mod", regexp.MustCompile(`^\s*(?:pub\s+)?mod\s+(\w+)`)},
	}

	for _, line := range strings.Split(sourceCode, "\n") {
		for _, pattern := range patterns {
			if matches := pattern.re.FindStringSubmatch(line); matches != nil {
				elements = append(elements, fmt.Sprintf("%s: %s", pattern.tag, matches[1]))
				break
			}
		}
	}

	return strings.Join(elements, "\n")
}
