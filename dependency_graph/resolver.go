package dependency_graph

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/codescope/codescope/dependency_graph/models"
)

// aliasPrefixes are configured path aliases that resolve against the
// project root rather than the importing file's directory.
var aliasPrefixes = []string{"@/", "~/"}

// knownFrameworks is the maintained list of framework package names.
// Matching is by prefix or substring, which is deliberately loose: a local
// file whose name contains a framework token will be misclassified.
var knownFrameworks = []string{
	"react",
	"vue",
	"angular",
	"svelte",
	"next",
	"nuxt",
	"express",
	"fastify",
	"koa",
	"@nestjs",
	"django",
	"flask",
	"fastapi",
	"spring",
	"rails",
}

// candidateExtensions are probed in order when resolving a local import
// target that carries no extension of its own.
var candidateExtensions = []string{
	"", ".ts", ".tsx", ".js", ".jsx", ".mjs", ".py", ".go", ".java", ".cs", ".rs",
}

// indexFileNames are probed inside a target that resolves to a directory.
var indexFileNames = []string{"index.ts", "index.tsx", "index.js", "index.jsx", "__init__.py", "mod.rs"}

// classifyImport derives the import type from the target string alone.
func classifyImport(target string) models.ImportType {
	if isLocalTarget(target) {
		return models.ImportTypeLocal
	}
	for _, fw := range knownFrameworks {
		if strings.HasPrefix(target, fw) || strings.Contains(target, fw) {
			return models.ImportTypeFramework
		}
	}
	return models.ImportTypeExternal
}

func isLocalTarget(target string) bool {
	if strings.HasPrefix(target, "./") || strings.HasPrefix(target, "../") || target == "." || target == ".." {
		return true
	}
	for _, alias := range aliasPrefixes {
		if strings.HasPrefix(target, alias) {
			return true
		}
	}
	return false
}

// resolveLocalImport maps a local target to a project-relative file path by
// probing candidate extensions and index-file fallbacks on disk. An empty
// result is a resolution miss, not an error.
func resolveLocalImport(rootPath, sourceFile, target string) string {
	var base string
	aliased := false
	for _, alias := range aliasPrefixes {
		if strings.HasPrefix(target, alias) {
			base = strings.TrimPrefix(target, alias)
			aliased = true
			break
		}
	}
	if !aliased {
		base = path.Join(path.Dir(sourceFile), target)
	}
	base = path.Clean(base)
	if base == "." || strings.HasPrefix(base, "..") {
		return ""
	}

	for _, ext := range candidateExtensions {
		candidate := base + ext
		if isFile(filepath.Join(rootPath, filepath.FromSlash(candidate))) {
			return candidate
		}
	}

	for _, index := range indexFileNames {
		candidate := path.Join(base, index)
		if isFile(filepath.Join(rootPath, filepath.FromSlash(candidate))) {
			return candidate
		}
	}

	return ""
}

func isFile(absPath string) bool {
	info, err := os.Stat(absPath)
	return err == nil && !info.IsDir()
}
