package contracts

import (
	"context"

	"github.com/codescope/codescope/retrieval/models"
)

// IVectorIndex is the boundary to the semantic search service. No
// assumptions are made about the embedding model behind it.
type IVectorIndex interface {
	SearchFiles(ctx context.Context, query string, topK int) ([]models.VectorHit, error)
}

type ILexicalScorer interface {
	SearchFiles(query string, candidateFiles []string, config models.SearchConfig) []models.ScoredFile
	RetrieveFiles(scoredFiles []models.ScoredFile, config models.RetrieveConfig) []models.FileContent
	ClearCache()
}

type IHybridRetriever interface {
	Retrieve(ctx context.Context, query string, options models.RetrieveOptions) ([]models.HybridFileResult, error)
}
