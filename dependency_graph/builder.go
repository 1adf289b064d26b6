package dependency_graph

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/codescope/codescope/dependency_graph/contracts"
	"github.com/codescope/codescope/dependency_graph/models"
)

// batchSize bounds how many files are read concurrently. A batch runs to
// completion, extraction included, before the next one starts, which caps
// the number of in-flight file contents on large repositories.
const batchSize = 50

// GraphBuilder scans a project's source files and builds the import graph.
type GraphBuilder struct {
	cacheManager *CacheManager
}

// NewGraphBuilder initializes a new GraphBuilder.
func NewGraphBuilder() contracts.IGraphBuilder {
	cacheManager, err := NewCacheManager("")
	if err != nil {
		// Fall back to scanning without a cache
		log.Printf("Warning: failed to initialize scan cache: %v", err)
		cacheManager = nil
	}

	return &GraphBuilder{cacheManager: cacheManager}
}

// NewGraphBuilderWithCacheDir initializes a GraphBuilder with an explicit
// cache directory.
func NewGraphBuilderWithCacheDir(cacheDir string) (contracts.IGraphBuilder, error) {
	cacheManager, err := NewCacheManager(cacheDir)
	if err != nil {
		return nil, err
	}
	return &GraphBuilder{cacheManager: cacheManager}, nil
}

// NewGraphBuilderWithoutCache initializes a GraphBuilder that always scans
// from disk.
func NewGraphBuilderWithoutCache() contracts.IGraphBuilder {
	return &GraphBuilder{cacheManager: nil}
}

// ScanProject reads every candidate file, extracts its imports, resolves
// local targets against the disk, partitions files into modules and builds
// the dependency graph. Individual file failures are logged and treated as
// zero imports; they never abort the scan.
func (builder *GraphBuilder) ScanProject(rootPath string, relativeFilePaths []string) (*models.ScanResult, error) {
	if builder.cacheManager != nil {
		if cached, found := builder.cacheManager.GetScanResult(rootPath, relativeFilePaths); found {
			return cached, nil
		}
	}

	var raws []rawImport

	for start := 0; start < len(relativeFilePaths); start += batchSize {
		end := start + batchSize
		if end > len(relativeFilePaths) {
			end = len(relativeFilePaths)
		}
		batch := relativeFilePaths[start:end]

		// Per-slot accumulation; the merge below is the only writer of
		// the shared list, so it needs no lock.
		batchResults := make([][]rawImport, len(batch))

		var wg sync.WaitGroup
		for i, relativePath := range batch {
			wg.Add(1)
			go func(slot int, relativePath string) {
				defer wg.Done()
				batchResults[slot] = builder.scanFile(rootPath, relativePath)
			}(i, relativePath)
		}
		wg.Wait()

		for _, fileImports := range batchResults {
			raws = append(raws, fileImports...)
		}
	}

	imports := make([]models.ImportEdge, 0, len(raws))
	for _, raw := range raws {
		imports = append(imports, raw.Edge)
	}

	modules := identifyModules(relativeFilePaths, imports)
	graph := buildGraph(raws, modules)

	result := &models.ScanResult{
		Imports: imports,
		Modules: modules,
		Graph:   graph,
	}

	if builder.cacheManager != nil {
		if err := builder.cacheManager.SetScanResult(rootPath, relativeFilePaths, result); err != nil {
			log.Printf("Warning: failed to cache scan result: %v", err)
		}
	}

	return result, nil
}

// scanFile extracts, classifies and resolves the imports of one file.
func (builder *GraphBuilder) scanFile(rootPath, relativePath string) []rawImport {
	if DetectLanguage(relativePath) == "" {
		return nil
	}

	content, err := os.ReadFile(filepath.Join(rootPath, filepath.FromSlash(relativePath)))
	if err != nil {
		log.Printf("Warning: failed to read %s: %v", relativePath, err)
		return nil
	}

	raws := extractImports(relativePath, string(content))
	for i := range raws {
		edge := &raws[i].Edge
		edge.Type = classifyImport(edge.Target)
		if edge.Type == models.ImportTypeLocal {
			edge.ResolvedPath = resolveLocalImport(rootPath, relativePath, edge.Target)
		}
	}

	return raws
}

// ClearCache drops the persistent scan cache.
func (builder *GraphBuilder) ClearCache() error {
	if builder.cacheManager == nil {
		return nil
	}
	return builder.cacheManager.Clear()
}

// GetCacheStats reports scan cache usage.
func (builder *GraphBuilder) GetCacheStats() (map[string]interface{}, error) {
	if builder.cacheManager == nil {
		return map[string]interface{}{"cache_enabled": false}, nil
	}
	stats, err := builder.cacheManager.Stats()
	if err != nil {
		return nil, err
	}
	stats["cache_enabled"] = true
	return stats, nil
}
