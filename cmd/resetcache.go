package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the scan cache and semantic index",
	Long: `The 'reset-cache' command removes the cached scan results under the
'.codescope-cache' directory, including the semantic index database.
Use this command to clear corrupted cache or when experiencing cache-related issues.`,
	Run: func(cmd *cobra.Command, args []string) {
		var force bool
		var stats bool

		force, _ = cmd.Flags().GetBool("force")
		stats, _ = cmd.Flags().GetBool("stats")

		handleResetCacheCommand(force, stats, cmd)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics before reset")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(force bool, showStats bool, cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	if showStats {
		fmt.Println(lipgloss.Info.Render("Cache Statistics:"))
		if cacheStats, err := rootDependencies.GraphBuilder.GetCacheStats(); err == nil {
			if enabled, ok := cacheStats["cache_enabled"].(bool); !ok || !enabled {
				fmt.Println("  Cache is disabled")
				return
			}

			if dir, ok := cacheStats["cache_dir"].(string); ok {
				fmt.Printf("  Cache Directory: %s\n", dir)
			}
			if files, ok := cacheStats["cache_files"].(int); ok {
				fmt.Printf("  Cached Scans: %d\n", files)
			}
			if size, ok := cacheStats["total_size"].(int64); ok {
				fmt.Printf("  Total Size: %.2f MB\n", float64(size)/(1024*1024))
			}
		} else {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: Could not show statistics: %v", err)))
		}

		// Only show stats, skip the actual reset
		return
	}

	if !force {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Reset the scan cache and semantic index? (y/N): ")
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled"))
			return
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithRemoveWhenDone(true)
	spinnerReset, _ := spinner.Start("Resetting cache...")

	if err := rootDependencies.GraphBuilder.ClearCache(); err != nil {
		spinnerReset.Stop()
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error clearing scan cache: %v", err)))
		return
	}

	if err := os.Remove(rootDependencies.Config.IndexPath); err != nil && !os.IsNotExist(err) {
		spinnerReset.Stop()
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error removing semantic index: %v", err)))
		return
	}

	rootDependencies.Scorer.ClearCache()
	utils.ClearIgnoreCache()

	spinnerReset.Stop()
	fmt.Print("\r")
	fmt.Println(lipgloss.Green.Render("Cache reset complete"))
}
