package dependency_graph

import (
	"testing"

	"github.com/codescope/codescope/dependency_graph/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulePathFor(t *testing.T) {
	assert.Equal(t, "src/auth", modulePathFor("src/auth/login.ts"))
	assert.Equal(t, "src/auth", modulePathFor("src/auth/deep/session.ts"))
	assert.Equal(t, "src/app.ts", modulePathFor("src/app.ts"))
	assert.Equal(t, "main.go", modulePathFor("main.go"))
}

func TestIdentifyModules(t *testing.T) {
	files := []string{
		"src/auth/service.ts",
		"src/auth/session.ts",
		"src/api/routes.ts",
	}
	imports := []models.ImportEdge{
		{
			Source:       "src/api/routes.ts",
			Target:       "../auth/service",
			Imports:      []string{"login"},
			Type:         models.ImportTypeLocal,
			ResolvedPath: "src/auth/service.ts",
		},
		{
			Source:       "src/auth/service.ts",
			Target:       "./session",
			Imports:      []string{"getSession"},
			Type:         models.ImportTypeLocal,
			ResolvedPath: "src/auth/session.ts",
		},
		{
			Source:  "src/auth/session.ts",
			Target:  "axios",
			Imports: []string{},
			Type:    models.ImportTypeExternal,
		},
	}

	modules := identifyModules(files, imports)
	require.Len(t, modules, 2)

	byPath := make(map[string]models.ModuleInfo)
	for _, mod := range modules {
		byPath[mod.Path] = mod
	}

	auth, ok := byPath["src/auth"]
	require.True(t, ok)
	assert.Equal(t, "auth", auth.Name)
	assert.Equal(t, []string{"src/auth/service.ts", "src/auth/session.ts"}, auth.Files)
	assert.Empty(t, auth.Dependencies)
	// Named imports pulled out of the module by consumers, including
	// intra-module ones.
	assert.Equal(t, []string{"getSession", "login"}, auth.Exports)

	api, ok := byPath["src/api"]
	require.True(t, ok)
	assert.Equal(t, []string{"src/auth"}, api.Dependencies)
	assert.Empty(t, api.Exports)
}

func TestIdentifyModules_UnresolvedImportsIgnored(t *testing.T) {
	files := []string{"src/auth/service.ts"}
	imports := []models.ImportEdge{
		{Source: "src/auth/service.ts", Target: "./missing", Imports: []string{}, Type: models.ImportTypeLocal},
		{Source: "src/auth/service.ts", Target: "express", Imports: []string{}, Type: models.ImportTypeFramework},
	}

	modules := identifyModules(files, imports)
	require.Len(t, modules, 1)
	assert.Empty(t, modules[0].Dependencies)
	assert.Empty(t, modules[0].Exports)
}
