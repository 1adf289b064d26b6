package token_management

import (
	"fmt"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/retrieval/models"
	"github.com/codescope/codescope/token_management/contracts"
)

// charsPerToken is the rough character-to-token ratio used for budget
// estimates. Retrieval caps bound the data volume; the downstream agent
// does the exact accounting.
const charsPerToken = 4

// tokenManager implementation
type tokenManager struct{}

// NewTokenManager creates a new token estimator.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// EstimateTokens approximates the token count of a text.
func (tm *tokenManager) EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

// EstimateContextTokens sums the estimated tokens of a retrieval result
// set, including the per-file path header the report renders.
func (tm *tokenManager) EstimateContextTokens(results []models.HybridFileResult) int {
	total := 0
	for _, result := range results {
		total += tm.EstimateTokens(result.Path) + tm.EstimateTokens(result.Content)
	}
	return total
}

// FitWithinBudget keeps the highest-ranked results whose cumulative
// estimate stays within the budget, returning them with the used amount.
// A budget of zero or less disables trimming.
func (tm *tokenManager) FitWithinBudget(results []models.HybridFileResult, budget int) ([]models.HybridFileResult, int) {
	if budget <= 0 {
		return results, tm.EstimateContextTokens(results)
	}

	used := 0
	kept := make([]models.HybridFileResult, 0, len(results))
	for _, result := range results {
		cost := tm.EstimateTokens(result.Path) + tm.EstimateTokens(result.Content)
		if used+cost > budget {
			break
		}
		used += cost
		kept = append(kept, result)
	}
	return kept, used
}

// DisplayBudget prints the estimated context usage.
func (tm *tokenManager) DisplayBudget(used int, budget int) {
	var info string
	if budget > 0 {
		info = fmt.Sprintf("Context Tokens (est.): %d / %d", used, budget)
	} else {
		info = fmt.Sprintf("Context Tokens (est.): %d", used)
	}
	fmt.Println(lipgloss.BoxStyle.Render(info))
}
