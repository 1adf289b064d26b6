package models

// ImportType classifies where an import target lives.
type ImportType string

const (
	ImportTypeLocal     ImportType = "local"
	ImportTypeExternal  ImportType = "external"
	ImportTypeFramework ImportType = "framework"
)

// ImportEdge is a single import statement found in a source file.
// ResolvedPath is only set for local imports whose target was found on disk.
type ImportEdge struct {
	Source       string     `json:"source"`
	Target       string     `json:"target"`
	Imports      []string   `json:"imports"`
	Type         ImportType `json:"type"`
	ResolvedPath string     `json:"resolvedPath,omitempty"`
}

// ModuleInfo groups files under a shared path prefix (first two segments).
type ModuleInfo struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Files        []string `json:"files"`
	Dependencies []string `json:"dependencies"`
	Exports      []string `json:"exports"`
}

// NodeType tags the kind of entity a graph node stands for.
type NodeType string

const (
	NodeTypeFile     NodeType = "file"
	NodeTypeModule   NodeType = "module"
	NodeTypeExternal NodeType = "external"
)

// GraphNode is a node in the dependency graph, unique by ID.
type GraphNode struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
	Name string   `json:"name"`
}

// GraphEdge connects two nodes; both endpoints always exist in the node set.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// DependencyGraph is the project-wide import graph. It is built once per
// scan and treated as immutable afterwards, so concurrent readers need no
// locking.
type DependencyGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// ScanResult bundles everything a project scan produces.
type ScanResult struct {
	Imports []ImportEdge     `json:"imports"`
	Modules []ModuleInfo     `json:"modules"`
	Graph   *DependencyGraph `json:"graph"`
}

// FileRelationships holds the graph neighborhood of a single file.
type FileRelationships struct {
	Imports    []string `json:"imports"`
	ImportedBy []string `json:"importedBy"`
	SameModule []string `json:"sameModule"`
}

// HasNode reports whether the graph contains a node with the given ID.
func (g *DependencyGraph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// RelationshipsFor collects the imports, importers and module peers of a
// file from the edge list. All lookups are read-only.
func (g *DependencyGraph) RelationshipsFor(path string, modules []ModuleInfo) FileRelationships {
	rel := FileRelationships{
		Imports:    []string{},
		ImportedBy: []string{},
		SameModule: []string{},
	}

	for _, e := range g.Edges {
		if e.From == path {
			rel.Imports = append(rel.Imports, e.To)
		}
		if e.To == path {
			rel.ImportedBy = append(rel.ImportedBy, e.From)
		}
	}

	for _, m := range modules {
		member := false
		for _, f := range m.Files {
			if f == path {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, f := range m.Files {
			if f != path {
				rel.SameModule = append(rel.SameModule, f)
			}
		}
		break
	}

	return rel
}
