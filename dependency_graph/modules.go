package dependency_graph

import (
	"path"
	"sort"
	"strings"

	"github.com/codescope/codescope/dependency_graph/models"
)

// modulePathFor truncates a file path to its first two segments. Files
// closer to the root keep what they have.
func modulePathFor(filePath string) string {
	parts := strings.Split(filePath, "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

// identifyModules partitions the scanned files into modules and derives
// each module's dependencies from the resolved local imports of its
// members. Exports are the named imports consumers pull out of the module.
func identifyModules(files []string, imports []models.ImportEdge) []models.ModuleInfo {
	byPath := make(map[string]*models.ModuleInfo)
	order := []string{}

	for _, file := range files {
		mp := modulePathFor(file)
		mod, ok := byPath[mp]
		if !ok {
			mod = &models.ModuleInfo{
				Name:         path.Base(mp),
				Path:         mp,
				Files:        []string{},
				Dependencies: []string{},
				Exports:      []string{},
			}
			byPath[mp] = mod
			order = append(order, mp)
		}
		mod.Files = append(mod.Files, file)
	}

	depSets := make(map[string]map[string]bool)
	exportSets := make(map[string]map[string]bool)

	for _, imp := range imports {
		if imp.Type != models.ImportTypeLocal || imp.ResolvedPath == "" {
			continue
		}
		sourceModule := modulePathFor(imp.Source)
		targetModule := modulePathFor(imp.ResolvedPath)
		if _, ok := byPath[sourceModule]; !ok {
			continue
		}

		if targetModule != sourceModule {
			if depSets[sourceModule] == nil {
				depSets[sourceModule] = make(map[string]bool)
			}
			depSets[sourceModule][targetModule] = true
		}

		if _, ok := byPath[targetModule]; ok {
			for _, name := range imp.Imports {
				if exportSets[targetModule] == nil {
					exportSets[targetModule] = make(map[string]bool)
				}
				exportSets[targetModule][name] = true
			}
		}
	}

	modules := make([]models.ModuleInfo, 0, len(order))
	for _, mp := range order {
		mod := byPath[mp]
		mod.Dependencies = sortedKeys(depSets[mp])
		mod.Exports = sortedKeys(exportSets[mp])
		modules = append(modules, *mod)
	}

	return modules
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
