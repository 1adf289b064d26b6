package token_management

import (
	"strings"
	"testing"

	"github.com/codescope/codescope/retrieval/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(path string, contentLen int) models.HybridFileResult {
	return models.HybridFileResult{
		FileContent: models.FileContent{
			Path:    path,
			Content: strings.Repeat("x", contentLen),
		},
	}
}

func TestEstimateTokens(t *testing.T) {
	tm := NewTokenManager()

	assert.Equal(t, 0, tm.EstimateTokens(""))
	assert.Equal(t, 1, tm.EstimateTokens("abc"))
	assert.Equal(t, 1, tm.EstimateTokens("abcd"))
	assert.Equal(t, 2, tm.EstimateTokens("abcde"))
}

func TestEstimateContextTokens(t *testing.T) {
	tm := NewTokenManager()

	results := []models.HybridFileResult{
		result("a.ts", 40), // 1 + 10
		result("b.ts", 80), // 1 + 20
	}
	assert.Equal(t, 32, tm.EstimateContextTokens(results))
}

func TestFitWithinBudget(t *testing.T) {
	tm := NewTokenManager()

	results := []models.HybridFileResult{
		result("a.ts", 40), // 11 tokens
		result("b.ts", 80), // 21 tokens
		result("c.ts", 40), // 11 tokens
	}

	kept, used := tm.FitWithinBudget(results, 35)
	require.Len(t, kept, 2)
	assert.Equal(t, "a.ts", kept[0].Path)
	assert.Equal(t, "b.ts", kept[1].Path)
	assert.Equal(t, 32, used)
}

func TestFitWithinBudget_ZeroBudgetDisablesTrimming(t *testing.T) {
	tm := NewTokenManager()

	results := []models.HybridFileResult{result("a.ts", 40)}
	kept, used := tm.FitWithinBudget(results, 0)
	assert.Len(t, kept, 1)
	assert.Equal(t, 11, used)
}

func TestFitWithinBudget_StopsAtFirstOverflow(t *testing.T) {
	tm := NewTokenManager()

	results := []models.HybridFileResult{
		result("a.ts", 400), // 101 tokens
		result("b.ts", 4),   // 2 tokens
	}

	// Trimming keeps the ranked prefix; a small later file cannot jump
	// ahead of a large earlier one.
	kept, used := tm.FitWithinBudget(results, 50)
	assert.Empty(t, kept)
	assert.Equal(t, 0, used)
}
