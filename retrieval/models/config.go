package models

import (
	graph_models "github.com/codescope/codescope/dependency_graph/models"
)

// Strategy selects how the hybrid retriever combines its signals.
type Strategy string

const (
	StrategyVector Strategy = "vector"
	StrategyGraph  Strategy = "graph"
	StrategyHybrid Strategy = "hybrid"
	StrategySmart  Strategy = "smart"
)

const (
	DefaultTopK                = 5
	DefaultSimilarityThreshold = 0.3
	DefaultVectorWeight        = 0.6
	DefaultGraphWeight         = 0.4
	DefaultMaxContentLength    = 10000
	DefaultCacheCapacity       = 100

	// RelatedScoreFactor discounts scores propagated to graph-expanded
	// neighbors. Expansion is single-hop; the factor does not decay with
	// distance.
	RelatedScoreFactor = 0.3
)

// SearchConfig tunes lexical search. A nil Scan disables graph-assisted
// expansion.
type SearchConfig struct {
	TopK               int
	ExcludedExtensions []string
	ExcludedPaths      []string
	Scan               *graph_models.ScanResult
}

// DefaultExcludedExtensions and DefaultExcludedPaths drop build artifacts
// and test fixtures from lexical candidates.
var (
	DefaultExcludedExtensions = []string{".min.js", ".map", ".d.ts", ".snap", ".lock"}
	DefaultExcludedPaths      = []string{"node_modules", "dist", "build", "out", "coverage", "vendor", "target", "__tests__", "fixtures"}
)

// RetrieveConfig tunes content retrieval.
type RetrieveConfig struct {
	MaxContentLength int
}

// RetrieveOptions tunes a hybrid retrieval call.
type RetrieveOptions struct {
	Strategy            Strategy
	TopK                int
	SimilarityThreshold float64
	VectorWeight        float64
	GraphWeight         float64
	ExpandRelated       bool
	MaxContentLength    int
}

// Normalize fills zero values with defaults. Weights default as a pair so
// a caller setting only one of them keeps the sum at 1.
func (o RetrieveOptions) Normalize() RetrieveOptions {
	if o.Strategy == "" {
		o.Strategy = StrategyHybrid
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.SimilarityThreshold == 0 {
		o.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if o.VectorWeight == 0 && o.GraphWeight == 0 {
		o.VectorWeight = DefaultVectorWeight
		o.GraphWeight = DefaultGraphWeight
	}
	if o.MaxContentLength <= 0 {
		o.MaxContentLength = DefaultMaxContentLength
	}
	return o
}
