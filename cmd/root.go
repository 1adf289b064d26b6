package cmd

import (
	"fmt"
	"os"

	"github.com/codescope/codescope/config"
	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/dependency_graph"
	contracts_graph "github.com/codescope/codescope/dependency_graph/contracts"
	"github.com/codescope/codescope/providers/ollama"
	"github.com/codescope/codescope/retrieval"
	contracts_retrieval "github.com/codescope/codescope/retrieval/contracts"
	"github.com/codescope/codescope/token_management"
	contracts_token "github.com/codescope/codescope/token_management/contracts"
	"github.com/codescope/codescope/vector_index"
	"github.com/spf13/cobra"
)

// RootDependencies holds the dependencies needed for the root command
type RootDependencies struct {
	Config          *config.Config
	Cwd             string
	GraphBuilder    contracts_graph.IGraphBuilder
	Scorer          *retrieval.LexicalFileScorer
	VectorIndex     *vector_index.VectorIndex
	Retriever       contracts_retrieval.IHybridRetriever
	TokenManagement contracts_token.ITokenManagement
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "codescope retrieves the most relevant code context for a task.",
	Long: `codescope scans a project into a dependency graph, indexes file contents
semantically, and combines both signals to surface the files that matter for a
given query. Use the subcommands to scan, index, and retrieve.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error executing command: %v", err)))
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the var declaration to avoid an
	// initialization cycle: the closure references handleRootCommand,
	// which in turn references rootCmd.
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			rootDependencies := handleRootCommand(cmd)
			if rootDependencies == nil {
				return
			}
			fmt.Println(lipgloss.Info.Render(fmt.Sprintf("codescope version %s", rootDependencies.Config.Version)))
			return
		}
		_ = cmd.Help()
	}
	config.InitFlags(rootCmd)
}

// handleRootCommand initializes the shared dependencies from configuration.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	rootDependencies := &RootDependencies{}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render("Error getting current directory"))
		return nil
	}
	rootDependencies.Cwd = cwd

	rootDependencies.Config = config.LoadConfigs(rootCmd, cwd)

	if rootDependencies.Config.EnableCache {
		rootDependencies.GraphBuilder = dependency_graph.NewGraphBuilder()
	} else {
		rootDependencies.GraphBuilder = dependency_graph.NewGraphBuilderWithoutCache()
	}

	rootDependencies.Scorer, err = retrieval.NewLexicalFileScorer(cwd, rootDependencies.Config.Retrieval.CacheCapacity)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error creating file scorer: %v", err)))
		return nil
	}

	rootDependencies.TokenManagement = token_management.NewTokenManager()

	return rootDependencies
}

// openVectorIndex opens the semantic index, wiring the embedding provider from config.
// Callers that only need lexical or graph retrieval should not pay the cost, so
// this is done on demand rather than in handleRootCommand.
func openVectorIndex(rootDependencies *RootDependencies) (*vector_index.VectorIndex, error) {
	embedCfg := rootDependencies.Config.EmbeddingConfig

	provider := ollama.NewOllamaEmbeddingProvider(&ollama.OllamaConfig{
		BaseURL: embedCfg.BaseURL,
		Model:   embedCfg.Model,
		Dim:     embedCfg.Dim,
	})

	index, err := vector_index.Open(vector_index.Config{
		Path: rootDependencies.Config.IndexPath,
		Dim:  embedCfg.Dim,
	}, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector index: %w", err)
	}

	rootDependencies.VectorIndex = index
	return index, nil
}
