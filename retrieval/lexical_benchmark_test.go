package retrieval

import (
	"fmt"
	"testing"

	"github.com/codescope/codescope/retrieval/models"
	"github.com/stretchr/testify/require"
)

func BenchmarkSearchFiles(b *testing.B) {
	scorer, err := NewLexicalFileScorer(b.TempDir(), 0)
	require.NoError(b, err)

	candidates := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		candidates = append(candidates, fmt.Sprintf("src/module%02d/file%03d_service.ts", i%20, i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scorer.SearchFiles("authentication service logic", candidates, models.SearchConfig{TopK: 10})
	}
}

func BenchmarkExtractKeywords(b *testing.B) {
	query := "find the authentication service configuration and error handling logic"
	for i := 0; i < b.N; i++ {
		ExtractKeywords(query)
	}
}
