package models

import (
	graph_models "github.com/codescope/codescope/dependency_graph/models"
)

// ScoredFile is a lexical match candidate. MatchReasons are append-only
// evidence for why the score is what it is.
type ScoredFile struct {
	Path         string   `json:"path"`
	Score        float64  `json:"score"`
	MatchReasons []string `json:"matchReasons"`
}

// FileContent is the retrieved content of one file. Truncated is set iff
// the content was capped below its original size.
type FileContent struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	Size      int64  `json:"size"`
}

// VectorHit is a semantic-search result from the vector index.
type VectorHit struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// HybridFileResult is a fused retrieval result: the file's content plus
// the combined relevance evidence. Rank is 1-based and unique within one
// result set.
type HybridFileResult struct {
	FileContent
	RelevanceScore float64                         `json:"relevanceScore"`
	MatchReasons   []string                        `json:"matchReasons"`
	Relationships  *graph_models.FileRelationships `json:"relationships,omitempty"`
	Rank           int                             `json:"rank"`
}
