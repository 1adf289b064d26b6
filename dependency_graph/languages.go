package dependency_graph

import (
	"regexp"
	"strings"

	"github.com/codescope/codescope/dependency_graph/models"
)

// ExtractionRule is one import syntax for a language. Matcher finds raw
// occurrences; Extract turns a single match into edges, one per distinct
// imported target.
type ExtractionRule struct {
	PatternID string
	Matcher   *regexp.Regexp
	EdgeType  string
	Extract   func(source string, match []string) []models.ImportEdge
}

// languageRegistry maps a file extension to its language name. Files whose
// extension is not registered are skipped without error.
var languageRegistry = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".py":   "python",
	".go":   "go",
	".java": "java",
	".cs":   "csharp",
	".rs":   "rust",
}

// extractionRules holds the ordered rule list per language. Adding a
// language means adding a registry entry and a rule list, nothing central.
var extractionRules = map[string][]ExtractionRule{
	"typescript": ecmaScriptRules,
	"javascript": ecmaScriptRules,
	"python":     pythonRules,
	"go":         goRules,
	"java":       javaRules,
	"csharp":     csharpRules,
	"rust":       rustRules,
}

// singleTarget builds the common one-edge extractor for rules whose first
// capture group is the import target.
func singleTarget(source string, match []string) []models.ImportEdge {
	if len(match) < 2 || match[1] == "" {
		return nil
	}
	return []models.ImportEdge{{
		Source:  source,
		Target:  strings.TrimSpace(match[1]),
		Imports: []string{},
	}}
}

var ecmaScriptRules = []ExtractionRule{
	{
		PatternID: "es_named_import",
		Matcher:   regexp.MustCompile(`import\s+(?:[\w$]+\s*,\s*)?\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`),
		EdgeType:  "import",
		Extract: func(source string, match []string) []models.ImportEdge {
			return []models.ImportEdge{{
				Source:  source,
				Target:  match[2],
				Imports: splitNamedImports(match[1]),
			}}
		},
	},
	{
		PatternID: "es_default_import",
		Matcher:   regexp.MustCompile(`import\s+(?:[\w$]+|\*\s+as\s+[\w$]+)\s+from\s*['"]([^'"]+)['"]`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
	{
		PatternID: "es_side_effect_import",
		Matcher:   regexp.MustCompile(`import\s*['"]([^'"]+)['"]`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
	{
		PatternID: "es_export_from",
		Matcher:   regexp.MustCompile(`export\s+[^;\n]*?from\s*['"]([^'"]+)['"]`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
	{
		PatternID: "commonjs_require",
		Matcher:   regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		EdgeType:  "require",
		Extract:   singleTarget,
	},
	{
		PatternID: "es_dynamic_import",
		Matcher:   regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
}

var pythonRules = []ExtractionRule{
	{
		PatternID: "py_from_import",
		Matcher:   regexp.MustCompile(`(?m)^\s*from\s+([\w\.]+)\s+import\s+([^\n#]+)`),
		EdgeType:  "import",
		Extract: func(source string, match []string) []models.ImportEdge {
			return []models.ImportEdge{{
				Source:  source,
				Target:  match[1],
				Imports: splitNamedImports(match[2]),
			}}
		},
	},
	{
		PatternID: "py_import",
		Matcher:   regexp.MustCompile(`(?m)^\s*import\s+([\w\.]+(?:\s*,\s*[\w\.]+)*)`),
		EdgeType:  "import",
		Extract: func(source string, match []string) []models.ImportEdge {
			var edges []models.ImportEdge
			for _, target := range strings.Split(match[1], ",") {
				target = strings.TrimSpace(target)
				if target == "" {
					continue
				}
				edges = append(edges, models.ImportEdge{
					Source:  source,
					Target:  target,
					Imports: []string{},
				})
			}
			return edges
		},
	},
}

var goRules = []ExtractionRule{
	{
		PatternID: "go_single_import",
		Matcher:   regexp.MustCompile(`(?m)^\s*import\s+(?:\w+\s+)?"([^"]+)"`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
	{
		PatternID: "go_import_block",
		Matcher:   regexp.MustCompile(`(?s)import\s*\(([^)]*)\)`),
		EdgeType:  "import",
		Extract: func(source string, match []string) []models.ImportEdge {
			var edges []models.ImportEdge
			pathRe := regexp.MustCompile(`"([^"]+)"`)
			for _, line := range strings.Split(match[1], "\n") {
				m := pathRe.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				edges = append(edges, models.ImportEdge{
					Source:  source,
					Target:  m[1],
					Imports: []string{},
				})
			}
			return edges
		},
	},
}

var javaRules = []ExtractionRule{
	{
		PatternID: "java_import",
		Matcher:   regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w\.\*]+)\s*;`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
}

var csharpRules = []ExtractionRule{
	{
		PatternID: "cs_using",
		Matcher:   regexp.MustCompile(`(?m)^\s*using\s+(?:static\s+)?([\w\.]+)\s*;`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
}

var rustRules = []ExtractionRule{
	{
		PatternID: "rust_use",
		Matcher:   regexp.MustCompile(`(?m)^\s*(?:pub\s+)?use\s+([\w:]+)`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
	{
		PatternID: "rust_extern_crate",
		Matcher:   regexp.MustCompile(`extern\s+crate\s+(\w+)`),
		EdgeType:  "import",
		Extract:   singleTarget,
	},
}

// splitNamedImports normalizes a bracketed import list into bare names,
// dropping aliases ("a as b" keeps "a").
func splitNamedImports(raw string) []string {
	names := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "(" || part == ")" {
			continue
		}
		part = strings.Trim(part, "()")
		if idx := strings.Index(part, " as "); idx > 0 {
			part = part[:idx]
		}
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// DetectLanguage returns the registered language for a file path, or an
// empty string when the extension is not supported.
func DetectLanguage(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return languageRegistry[strings.ToLower(path[idx:])]
}

// rawImport pairs an extracted edge with the syntax kind of the statement
// that produced it. The kind becomes the graph edge type; it is not part
// of the exported ImportEdge contract.
type rawImport struct {
	Edge models.ImportEdge
	Kind string
}

// extractImports runs every rule registered for the file's language over
// its content. One entry per distinct imported target.
func extractImports(relativePath string, content string) []rawImport {
	language := DetectLanguage(relativePath)
	if language == "" {
		return nil
	}

	var imports []rawImport
	seen := make(map[string]bool)

	for _, rule := range extractionRules[language] {
		for _, match := range rule.Matcher.FindAllStringSubmatch(content, -1) {
			for _, edge := range rule.Extract(relativePath, match) {
				if seen[edge.Target] {
					continue
				}
				seen[edge.Target] = true
				imports = append(imports, rawImport{Edge: edge, Kind: rule.EdgeType})
			}
		}
	}

	return imports
}
