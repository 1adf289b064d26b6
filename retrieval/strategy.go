package retrieval

import (
	"strings"

	"github.com/codescope/codescope/retrieval/models"
)

// graphIndicativeTerms suggest the caller is asking about structure.
var graphIndicativeTerms = []string{
	"import", "depend", "call", "extend", "implement", "module",
	"related to", "connected", "uses",
}

// vectorIndicativeTerms suggest the caller is asking about meaning.
var vectorIndicativeTerms = []string{
	"authentication", "security", "validation", "logic", "algorithm",
	"implementation", "processing",
}

// ClassifyQuery picks a concrete strategy for a smart retrieval call.
// Only graph terms present selects graph; only vector terms selects
// vector; anything else, both or neither, falls back to hybrid.
func ClassifyQuery(query string) models.Strategy {
	lower := strings.ToLower(query)

	hasGraphTerm := containsAny(lower, graphIndicativeTerms)
	hasVectorTerm := containsAny(lower, vectorIndicativeTerms)

	switch {
	case hasGraphTerm && !hasVectorTerm:
		return models.StrategyGraph
	case hasVectorTerm && !hasGraphTerm:
		return models.StrategyVector
	default:
		return models.StrategyHybrid
	}
}
