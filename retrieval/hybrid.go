package retrieval

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	graph_models "github.com/codescope/codescope/dependency_graph/models"
	"github.com/codescope/codescope/retrieval/contracts"
	"github.com/codescope/codescope/retrieval/models"
)

// HybridRetriever fuses vector similarity, lexical evidence and graph
// centrality into one ranked file list. Every call is a pure function of
// the query, the graph snapshot, the index response and the options; the
// graph is never mutated after the scan that produced it.
type HybridRetriever struct {
	vectorIndex contracts.IVectorIndex
	scorer      *LexicalFileScorer
	scan        *graph_models.ScanResult
}

// NewHybridRetriever wires the retriever. scan may be nil when no
// dependency graph is available; graph-dependent strategies then degrade.
func NewHybridRetriever(vectorIndex contracts.IVectorIndex, scorer *LexicalFileScorer, scan *graph_models.ScanResult) contracts.IHybridRetriever {
	return &HybridRetriever{
		vectorIndex: vectorIndex,
		scorer:      scorer,
		scan:        scan,
	}
}

// candidate is an intermediate fused result before content retrieval.
type candidate struct {
	path          string
	score         float64
	reasons       []string
	relationships *graph_models.FileRelationships
}

// Retrieve runs the configured strategy and returns ranked results capped
// at TopK. An empty result set is valid and never an error.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, options models.RetrieveOptions) ([]models.HybridFileResult, error) {
	options = options.Normalize()

	strategy := options.Strategy
	if strategy == models.StrategySmart {
		strategy = ClassifyQuery(query)
	}

	var candidates []candidate
	var err error

	switch strategy {
	case models.StrategyVector:
		candidates, err = r.vectorCandidates(ctx, query, options)
	case models.StrategyGraph:
		if !r.hasGraph() {
			log.Printf("Notice: graph strategy requested without a dependency graph, using vector search")
			candidates, err = r.vectorCandidates(ctx, query, options)
		} else {
			candidates = r.graphCandidates(query, options)
		}
	default:
		candidates, err = r.hybridCandidates(ctx, query, options)
	}
	if err != nil {
		return nil, err
	}

	return r.finalize(candidates, options), nil
}

func (r *HybridRetriever) hasGraph() bool {
	return r.scan != nil && r.scan.Graph != nil
}

// vectorCandidates delegates entirely to the vector index.
func (r *HybridRetriever) vectorCandidates(ctx context.Context, query string, options models.RetrieveOptions) ([]candidate, error) {
	hits, err := r.vectorIndex.SearchFiles(ctx, query, options.TopK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	var candidates []candidate
	for _, hit := range hits {
		if hit.Score < options.SimilarityThreshold {
			continue
		}
		candidates = append(candidates, candidate{
			path:    hit.Path,
			score:   hit.Score,
			reasons: []string{"semantic similarity"},
		})
	}
	return candidates, nil
}

// graphCandidates matches query keywords against graph node and module
// names. Scores fall linearly with discovery order.
func (r *HybridRetriever) graphCandidates(query string, options models.RetrieveOptions) []candidate {
	keywords := ExtractKeywords(query)

	seen := make(map[string]bool)
	var paths []string
	var reasons []string

	match := func(name string) string {
		lower := strings.ToLower(name)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return keyword
			}
		}
		return ""
	}

	for _, node := range r.scan.Graph.Nodes {
		switch node.Type {
		case graph_models.NodeTypeFile:
			if keyword := match(node.Name); keyword != "" && !seen[node.ID] {
				seen[node.ID] = true
				paths = append(paths, node.ID)
				reasons = append(reasons, fmt.Sprintf("graph node matches '%s'", keyword))
			}
		case graph_models.NodeTypeModule:
			keyword := match(node.Name)
			if keyword == "" {
				continue
			}
			for _, mod := range r.scan.Modules {
				if mod.Path != node.ID {
					continue
				}
				for _, file := range mod.Files {
					if seen[file] {
						continue
					}
					seen[file] = true
					paths = append(paths, file)
					reasons = append(reasons, fmt.Sprintf("member of module '%s'", mod.Name))
				}
			}
		}
	}

	total := len(paths)
	candidates := make([]candidate, 0, total)
	for i, filePath := range paths {
		rel := r.scan.Graph.RelationshipsFor(filePath, r.scan.Modules)
		candidates = append(candidates, candidate{
			path:          filePath,
			score:         1 - float64(i)/float64(total),
			reasons:       []string{reasons[i]},
			relationships: &rel,
		})
	}

	if len(candidates) > options.TopK {
		candidates = candidates[:options.TopK]
	}
	return candidates
}

// graphCentrality turns a file's neighborhood size into a score in [0, 1].
func graphCentrality(rel *graph_models.FileRelationships) float64 {
	if rel == nil {
		return 0
	}
	raw := (float64(len(rel.ImportedBy))*0.5 + float64(len(rel.Imports))*0.3 + float64(len(rel.SameModule))*0.2) / 10
	if raw > 1 {
		return 1
	}
	if raw < 0 {
		return 0
	}
	return raw
}

// hybridCandidates fuses vector similarity with graph centrality and
// optionally expands along graph edges.
func (r *HybridRetriever) hybridCandidates(ctx context.Context, query string, options models.RetrieveOptions) ([]candidate, error) {
	hits, err := r.vectorIndex.SearchFiles(ctx, query, 2*options.TopK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	present := make(map[string]bool)
	var candidates []candidate

	for _, hit := range hits {
		if hit.Score < options.SimilarityThreshold {
			continue
		}

		var rel *graph_models.FileRelationships
		if r.hasGraph() {
			relationships := r.scan.Graph.RelationshipsFor(hit.Path, r.scan.Modules)
			rel = &relationships
		}

		graphScore := graphCentrality(rel)
		combined := hit.Score*options.VectorWeight + graphScore*options.GraphWeight

		reasons := []string{"semantic similarity"}
		if graphScore > 0 {
			reasons = append(reasons, "graph connectivity")
		}

		present[hit.Path] = true
		candidates = append(candidates, candidate{
			path:          hit.Path,
			score:         combined,
			reasons:       reasons,
			relationships: rel,
		})
	}

	if options.ExpandRelated && r.hasGraph() {
		candidates = r.expandCandidates(candidates, present)
	}

	return candidates, nil
}

// expansion caps per relation kind.
const (
	maxExpandImports    = 3
	maxExpandImportedBy = 3
	maxExpandSameModule = 2
)

// expandCandidates adds close graph neighbors of each fused candidate with
// a discounted score. Only single-hop neighbors are considered and the
// discount is flat.
func (r *HybridRetriever) expandCandidates(candidates []candidate, present map[string]bool) []candidate {
	fileNodes := make(map[string]bool)
	for _, node := range r.scan.Graph.Nodes {
		if node.Type == graph_models.NodeTypeFile {
			fileNodes[node.ID] = true
		}
	}

	expanded := candidates
	for _, parent := range candidates {
		if parent.relationships == nil {
			continue
		}

		add := func(related []string, limit int, reasonFormat string) {
			count := 0
			for _, relatedPath := range related {
				if count >= limit {
					break
				}
				if present[relatedPath] || !fileNodes[relatedPath] {
					continue
				}
				present[relatedPath] = true
				count++
				expanded = append(expanded, candidate{
					path:    relatedPath,
					score:   parent.score * models.RelatedScoreFactor,
					reasons: []string{fmt.Sprintf(reasonFormat, parent.path)},
				})
			}
		}

		add(parent.relationships.Imports, maxExpandImports, "imported by %s")
		add(parent.relationships.ImportedBy, maxExpandImportedBy, "imports %s")
		add(parent.relationships.SameModule, maxExpandSameModule, "same module as %s")
	}

	return expanded
}

// finalize sorts candidates, truncates to TopK, fetches content and
// assigns ranks. Files whose content cannot be read are dropped.
func (r *HybridRetriever) finalize(candidates []candidate, options models.RetrieveOptions) []models.HybridFileResult {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > options.TopK {
		candidates = candidates[:options.TopK]
	}

	scored := make([]models.ScoredFile, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, models.ScoredFile{Path: c.path})
	}
	contents := r.scorer.RetrieveFiles(scored, models.RetrieveConfig{MaxContentLength: options.MaxContentLength})
	contentByPath := make(map[string]models.FileContent, len(contents))
	for _, content := range contents {
		contentByPath[content.Path] = content
	}

	results := make([]models.HybridFileResult, 0, len(candidates))
	for _, c := range candidates {
		content, ok := contentByPath[c.path]
		if !ok {
			continue
		}
		results = append(results, models.HybridFileResult{
			FileContent:    content,
			RelevanceScore: c.score,
			MatchReasons:   c.reasons,
			Relationships:  c.relationships,
			Rank:           len(results) + 1,
		})
	}

	return results
}
