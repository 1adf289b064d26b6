package dependency_graph

import (
	"path"

	"github.com/codescope/codescope/dependency_graph/models"
)

// buildGraph assembles the node and edge sets from the extracted imports
// and the module partition. Every edge endpoint is added as a node first,
// so the closure invariant holds by construction. Unresolved local imports
// contribute no edge.
func buildGraph(raws []rawImport, modules []models.ModuleInfo) *models.DependencyGraph {
	graph := &models.DependencyGraph{
		Nodes: []models.GraphNode{},
		Edges: []models.GraphEdge{},
	}
	nodeIndex := make(map[string]bool)

	addNode := func(id string, nodeType models.NodeType) {
		if nodeIndex[id] {
			return
		}
		nodeIndex[id] = true
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:   id,
			Type: nodeType,
			Name: path.Base(id),
		})
	}

	for _, raw := range raws {
		imp := raw.Edge
		addNode(imp.Source, models.NodeTypeFile)

		switch {
		case imp.Type == models.ImportTypeLocal && imp.ResolvedPath != "":
			addNode(imp.ResolvedPath, models.NodeTypeFile)
			graph.Edges = append(graph.Edges, models.GraphEdge{
				From: imp.Source,
				To:   imp.ResolvedPath,
				Type: raw.Kind,
			})
		case imp.Type == models.ImportTypeExternal || imp.Type == models.ImportTypeFramework:
			addNode(imp.Target, models.NodeTypeExternal)
			graph.Edges = append(graph.Edges, models.GraphEdge{
				From: imp.Source,
				To:   imp.Target,
				Type: raw.Kind,
			})
		}
	}

	for _, mod := range modules {
		addNode(mod.Path, models.NodeTypeModule)
	}

	return graph
}
