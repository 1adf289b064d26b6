package retrieval

import (
	"fmt"
	"path"
	"sort"
	"strings"

	graph_models "github.com/codescope/codescope/dependency_graph/models"
	"github.com/codescope/codescope/retrieval/models"
)

// scoringContext is everything a heuristic can look at for one candidate.
type scoringContext struct {
	path     string
	fileName string
	dirPath  string
	keywords []string
	query    string
	isTest   bool
}

// scoringRule is one independent lexical heuristic. Scores add up; the
// total is floored at zero.
type scoringRule struct {
	id    string
	score func(ctx scoringContext) (float64, []string)
}

const (
	filenameKeywordWeight = 15
	pathKeywordWeight     = 8
	intentPatternWeight   = 12
	authPatternWeight     = 15
	testPatternWeight     = 10
	testPenalty           = -5
	entryPointWeight      = 5
)

// intentPairing links query intent terms to filename patterns.
type intentPairing struct {
	queryTerms    []string
	fileTerms     []string
	weight        float64
	reasonPattern string
}

var intentPairings = []intentPairing{
	{
		queryTerms:    []string{"service", "business"},
		fileTerms:     []string{"service"},
		weight:        intentPatternWeight,
		reasonPattern: "service",
	},
	{
		queryTerms:    []string{"api", "controller", "route", "endpoint"},
		fileTerms:     []string{"controller", "route", "api", "handler"},
		weight:        intentPatternWeight,
		reasonPattern: "api",
	},
	{
		queryTerms:    []string{"model", "entity", "schema", "data"},
		fileTerms:     []string{"model", "entity", "schema"},
		weight:        intentPatternWeight,
		reasonPattern: "data model",
	},
	{
		queryTerms:    []string{"config", "configuration", "setting"},
		fileTerms:     []string{"config", "settings", "env"},
		weight:        intentPatternWeight,
		reasonPattern: "config",
	},
	{
		queryTerms:    []string{"error", "exception", "failure"},
		fileTerms:     []string{"error", "exception"},
		weight:        intentPatternWeight,
		reasonPattern: "error handling",
	},
	{
		queryTerms:    []string{"auth", "authentication", "security", "login", "permission"},
		fileTerms:     []string{"auth", "guard", "security", "login", "session"},
		weight:        authPatternWeight,
		reasonPattern: "auth",
	},
	{
		queryTerms:    []string{"test", "spec", "testing"},
		fileTerms:     []string{".test.", ".spec.", "_test.", "test_"},
		weight:        testPatternWeight,
		reasonPattern: "test",
	},
}

// entryPointNames are canonical application entry files.
var entryPointNames = map[string]bool{
	"index.ts": true, "index.tsx": true, "index.js": true, "index.jsx": true,
	"main.ts": true, "main.js": true, "main.go": true, "main.py": true,
	"app.ts": true, "app.js": true, "app.py": true,
	"Main.java": true, "Program.cs": true, "main.rs": true,
}

var scoringRules = []scoringRule{
	{id: "filename_keywords", score: scoreFilenameKeywords},
	{id: "path_keywords", score: scorePathKeywords},
	{id: "intent_patterns", score: scoreIntentPatterns},
	{id: "test_penalty", score: scoreTestPenalty},
	{id: "entry_point", score: scoreEntryPoint},
}

// scoreFilenameKeywords counts each keyword found in the filename exactly
// once, regardless of how often it occurs.
func scoreFilenameKeywords(ctx scoringContext) (float64, []string) {
	var score float64
	var reasons []string
	for _, keyword := range ctx.keywords {
		if strings.Contains(ctx.fileName, keyword) {
			score += filenameKeywordWeight
			reasons = append(reasons, fmt.Sprintf("filename matches '%s'", keyword))
		}
	}
	return score, reasons
}

// scorePathKeywords rewards keywords that appear in the directory path but
// were not already counted via the filename.
func scorePathKeywords(ctx scoringContext) (float64, []string) {
	var score float64
	var reasons []string
	for _, keyword := range ctx.keywords {
		if strings.Contains(ctx.fileName, keyword) {
			continue
		}
		if strings.Contains(ctx.dirPath, keyword) {
			score += pathKeywordWeight
			reasons = append(reasons, fmt.Sprintf("path matches '%s'", keyword))
		}
	}
	return score, reasons
}

func scoreIntentPatterns(ctx scoringContext) (float64, []string) {
	var score float64
	var reasons []string
	for _, pairing := range intentPairings {
		if !containsAny(ctx.query, pairing.queryTerms) {
			continue
		}
		if !containsAny(ctx.fileName, pairing.fileTerms) {
			continue
		}
		score += pairing.weight
		reasons = append(reasons, fmt.Sprintf("%s pattern match", pairing.reasonPattern))
	}
	return score, reasons
}

func scoreTestPenalty(ctx scoringContext) (float64, []string) {
	if !ctx.isTest || isTestQuery(ctx.query) {
		return 0, nil
	}
	return testPenalty, []string{"test file penalized for non-test query"}
}

func scoreEntryPoint(ctx scoringContext) (float64, []string) {
	base := path.Base(ctx.path)
	if entryPointNames[base] {
		return entryPointWeight, []string{"entry point file"}
	}
	return 0, nil
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func isTestFile(filePath string) bool {
	lower := strings.ToLower(filePath)
	return strings.Contains(lower, ".test.") ||
		strings.Contains(lower, ".spec.") ||
		strings.Contains(lower, "_test.") ||
		strings.Contains(lower, "test_") ||
		strings.Contains(lower, "__tests__")
}

func isTestQuery(query string) bool {
	return containsAny(query, []string{"test", "spec", "testing"})
}

// SearchFiles scores the candidate files against the query and returns the
// top K, optionally expanded along the dependency graph.
func (scorer *LexicalFileScorer) SearchFiles(query string, candidateFiles []string, config models.SearchConfig) []models.ScoredFile {
	topK := config.TopK
	if topK <= 0 {
		topK = models.DefaultTopK
	}
	excludedExtensions := config.ExcludedExtensions
	if excludedExtensions == nil {
		excludedExtensions = models.DefaultExcludedExtensions
	}
	excludedPaths := config.ExcludedPaths
	if excludedPaths == nil {
		excludedPaths = models.DefaultExcludedPaths
	}

	keywords := ExtractKeywords(query)
	lowerQuery := strings.ToLower(query)

	var scored []models.ScoredFile
	for _, candidate := range candidateFiles {
		if isExcluded(candidate, excludedExtensions, excludedPaths) {
			continue
		}

		ctx := scoringContext{
			path:     candidate,
			fileName: strings.ToLower(path.Base(candidate)),
			dirPath:  strings.ToLower(path.Dir(candidate)),
			keywords: keywords,
			query:    lowerQuery,
			isTest:   isTestFile(candidate),
		}

		var total float64
		var reasons []string
		for _, rule := range scoringRules {
			points, ruleReasons := rule.score(ctx)
			total += points
			reasons = append(reasons, ruleReasons...)
		}
		if total < 0 {
			total = 0
		}
		if total == 0 {
			continue
		}

		scored = append(scored, models.ScoredFile{
			Path:         candidate,
			Score:        total,
			MatchReasons: reasons,
		})
	}

	// Stable sort keeps encounter order between equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	if config.Scan != nil && config.Scan.Graph != nil {
		scored = expandWithGraph(scored, config.Scan, topK)
	}

	return scored
}

func isExcluded(filePath string, extensions []string, pathTokens []string) bool {
	lower := strings.ToLower(filePath)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	for _, token := range pathTokens {
		for _, segment := range strings.Split(lower, "/") {
			if segment == token {
				return true
			}
		}
	}
	return false
}

const (
	expandImportWeight     = 10
	expandImportedByWeight = 8
	expandSameModuleWeight = 5
)

// expandWithGraph adds graph neighbors of the top-scored files. Entries
// merge by path: the first-seen entry wins, scores accumulate once per
// distinct relation, and the final list is capped at twice the original K.
func expandWithGraph(scored []models.ScoredFile, scan *graph_models.ScanResult, topK int) []models.ScoredFile {
	fileNodes := make(map[string]bool)
	for _, node := range scan.Graph.Nodes {
		if node.Type == graph_models.NodeTypeFile {
			fileNodes[node.ID] = true
		}
	}

	order := []string{}
	merged := make(map[string]*models.ScoredFile)
	for i := range scored {
		entry := scored[i]
		merged[entry.Path] = &entry
		order = append(order, entry.Path)
	}

	addRelated := func(relatedPath string, weight float64, reason string) {
		if !fileNodes[relatedPath] {
			return
		}
		if existing, ok := merged[relatedPath]; ok {
			existing.Score += weight
			existing.MatchReasons = append(existing.MatchReasons, reason)
			return
		}
		merged[relatedPath] = &models.ScoredFile{
			Path:         relatedPath,
			Score:        weight,
			MatchReasons: []string{reason},
		}
		order = append(order, relatedPath)
	}

	for _, entry := range scored {
		rel := scan.Graph.RelationshipsFor(entry.Path, scan.Modules)
		for _, imported := range rel.Imports {
			addRelated(imported, expandImportWeight, fmt.Sprintf("imported by %s", entry.Path))
		}
		for _, importer := range rel.ImportedBy {
			addRelated(importer, expandImportedByWeight, fmt.Sprintf("imports %s", entry.Path))
		}
		for _, peer := range rel.SameModule {
			addRelated(peer, expandSameModuleWeight, fmt.Sprintf("same module as %s", entry.Path))
		}
	}

	expanded := make([]models.ScoredFile, 0, len(order))
	for _, filePath := range order {
		expanded = append(expanded, *merged[filePath])
	}
	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Score > expanded[j].Score
	})
	if len(expanded) > 2*topK {
		expanded = expanded[:2*topK]
	}
	return expanded
}
