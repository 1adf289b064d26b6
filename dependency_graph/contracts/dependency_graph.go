package contracts

import "github.com/codescope/codescope/dependency_graph/models"

type IGraphBuilder interface {
	ScanProject(rootPath string, relativeFilePaths []string) (*models.ScanResult, error)
	ClearCache() error
	GetCacheStats() (map[string]interface{}, error)
}
