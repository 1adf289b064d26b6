package contracts

import "context"

// IEmbeddingProvider turns text into an embedding vector. The model runs
// outside this process; this is only the transport to it.
type IEmbeddingProvider interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
