package cmd

import (
	"fmt"
	"sort"

	"github.com/codescope/codescope/constants/lipgloss"
	"github.com/codescope/codescope/dependency_graph/models"
	"github.com/codescope/codescope/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the project into a dependency graph",
	Long: `The 'scan' command walks the project tree, extracts import statements from
every supported source file, resolves them against the disk and partitions the
files into modules. The result is cached and reused by 'retrieve' until the
scanned files change.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		handleScanCommand(cmd, verbose)
	},
}

func init() {
	scanCmd.Flags().BoolP("verbose", "V", false, "Print every module with its files and dependencies")

	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(cmd *cobra.Command, verbose bool) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

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
		spinnerScan.Stop()
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error scanning project: %v", err)))
		return
	}

	spinnerScan.Stop()
	fmt.Print("\r")

	fmt.Println(lipgloss.Info.Render(fmt.Sprintf("Scanned %d files into %d modules (%d nodes, %d edges)",
		len(files), len(scan.Modules), len(scan.Graph.Nodes), len(scan.Graph.Edges))))

	if !verbose {
		return
	}

	modules := make([]models.ModuleInfo, len(scan.Modules))
	copy(modules, scan.Modules)
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })

	for _, module := range modules {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("module %s (%d files)", module.Name, len(module.Files))))
		for _, file := range module.Files {
			fmt.Printf("  %s\n", file)
		}
		if len(module.Dependencies) > 0 {
			fmt.Printf("  depends on: %v\n", module.Dependencies)
		}
	}
}
