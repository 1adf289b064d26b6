package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/codescope/codescope/code_summary"
	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/retrieval"
	retrieval_models "github.com/codescope/codescope/retrieval/models"
	"github.com/codescope/codescope/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// retrieveCmd represents the retrieve command
var retrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Retrieve the files most relevant to a natural-language query",
	Long: `The 'retrieve' command combines semantic similarity from the vector index with
structural connectivity from the dependency graph and ranks the project files
most relevant to the query. The ranked files are printed with their contents,
match reasons and relationships, ready to paste into a prompt.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(lipgloss.Red.Render("Error: retrieve requires a query argument"))
			return
		}
		handleRetrieveCommand(cmd, strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(retrieveCmd)
}

func handleRetrieveCommand(cmd *cobra.Command, query string) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	retrievalCfg := rootDependencies.Config.Retrieval
	strategy := retrieval_models.Strategy(retrievalCfg.Strategy)

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)

	spinnerScan, _ := spinner.Start("Scanning project...")

	files, err := utils.ListProjectFiles(rootDependencies.Cwd)
	if err != nil {
		spinnerScan.Stop()
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error listing project files: %v", err)))
		return
	}

	scan, err := rootDependencies.GraphBuilder.ScanProject(rootDependencies.Cwd, files)
	if err != nil {
		// Graph signals degrade gracefully, so a failed scan is a warning.
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: project scan failed, continuing without graph: %v", err)))
		scan = nil
	}

	spinnerScan.Stop()
	fmt.Print("\r")

	index, err := openVectorIndex(rootDependencies)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	defer index.Close()

	retriever := retrieval.NewHybridRetriever(index, rootDependencies.Scorer, scan)
	rootDependencies.Retriever = retriever

	spinnerRetrieve, _ := spinner.Start("Retrieving context...")

	results, err := retriever.Retrieve(ctx, query, retrieval_models.RetrieveOptions{
		Strategy:            strategy,
		TopK:                retrievalCfg.TopK,
		SimilarityThreshold: retrievalCfg.SimilarityThreshold,
		VectorWeight:        retrievalCfg.VectorWeight,
		GraphWeight:         retrievalCfg.GraphWeight,
		ExpandRelated:       retrievalCfg.ExpandRelated,
		MaxContentLength:    retrievalCfg.MaxContentLength,
	})

	spinnerRetrieve.Stop()
	fmt.Print("\r")

	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error retrieving context: %v", err)))
		return
	}

	if len(results) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No relevant files found"))
		return
	}

	usedTokens := 0
	if budget := retrievalCfg.TokenBudget; budget > 0 {
		kept, used := rootDependencies.TokenManagement.FitWithinBudget(results, budget)
		if len(kept) < len(results) {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Token budget trimmed results from %d to %d files", len(results), len(kept))))
		}
		results = kept
		usedTokens = used
	}

	for _, result := range results {
		renderResult(ctx, rootDependencies, result)
	}

	if budget := retrievalCfg.TokenBudget; budget > 0 {
		rootDependencies.TokenManagement.DisplayBudget(usedTokens, budget)
	}
}

func renderResult(ctx context.Context, rootDependencies *RootDependencies, result retrieval_models.HybridFileResult) {
	header := fmt.Sprintf("#%d %s (score %.2f)", result.Rank, result.Path, result.RelevanceScore)
	fmt.Println(lipgloss.BoxStyle.Render(header))

	if len(result.MatchReasons) > 0 {
		fmt.Println(lipgloss.Gray.Render("  " + strings.Join(result.MatchReasons, ", ")))
	}
	if rel := result.Relationships; rel != nil {
		if len(rel.Imports) > 0 {
			fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  imports: %s", strings.Join(rel.Imports, ", "))))
		}
		if len(rel.ImportedBy) > 0 {
			fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  imported by: %s", strings.Join(rel.ImportedBy, ", "))))
		}
	}

	switch rootDependencies.Config.DisplayMode {
	case "info":
		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  %d bytes", result.Size)))
	case "relevant":
		for _, line := range code_summary.SummarizeFile(result.Path, []byte(result.Content)) {
			fmt.Println(line)
		}
	default:
		if err := utils.RenderFileWithContext(ctx, result.Path, result.Content, rootDependencies.Config.Theme); err != nil {
			fmt.Println(result.Content)
		}
		if result.Truncated {
			fmt.Println(lipgloss.Yellow.Render("  (content truncated)"))
		}
	}
	fmt.Println()
}
