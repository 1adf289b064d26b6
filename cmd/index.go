package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the semantic index of project files",
	Long: `The 'index' command embeds every project file with the configured embedding
provider and stores the vectors in a local sqlite database. Unchanged files are
skipped, so re-running after small edits is cheap. The index is what the
'vector', 'hybrid' and 'smart' retrieval strategies search against.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleIndexCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func handleIndexCommand(cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	index, err := openVectorIndex(rootDependencies)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}
	defer index.Close()

	files, err := utils.ListProjectFiles(rootDependencies.Cwd)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error listing project files: %v", err)))
		return
	}

	progress, _ := pterm.DefaultProgressbar.WithTotal(len(files)).WithTitle("Indexing").Start()

	indexed := 0
	skipped := 0
	failed := 0

	for _, relativePath := range files {
		if ctx.Err() != nil {
			fmt.Println(lipgloss.Yellow.Render("Indexing interrupted"))
			break
		}

		content, err := os.ReadFile(filepath.Join(rootDependencies.Cwd, relativePath))
		if err != nil {
			failed++
			progress.Increment()
			continue
		}

		updated, err := index.IndexFile(ctx, relativePath, content)
		switch {
		case err != nil:
			failed++
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: failed to index %s: %v", relativePath, err)))
		case updated:
			indexed++
		default:
			skipped++
		}
		progress.Increment()
	}

	_, _ = progress.Stop()

	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Indexed %d files (%d unchanged, %d failed)", indexed, skipped, failed)))
}
