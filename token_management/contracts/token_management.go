package contracts

import "github.com/codescope/codescope/retrieval/models"

type ITokenManagement interface {
	EstimateTokens(text string) int
	EstimateContextTokens(results []models.HybridFileResult) int
	FitWithinBudget(results []models.HybridFileResult, budget int) ([]models.HybridFileResult, int)
	DisplayBudget(used int, budget int)
}
