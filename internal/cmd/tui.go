package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/scanner"
	"github.com/cheerioskun/filetable/internal/utils"
	"github.com/cheerioskun/filetable/ui"
	"github.com/spf13/cobra"
)

var (
	tuiSelect []string
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [source]",
	Short: "Start the interactive file table",
	Long: `Start the interactive file table.

The table provides:
- One row per remote file with device, status, path and size
- Row selection with space, select all / none with a
- A download confirmation listing the selected files that are available (d)
- Reloading the source while keeping the current selection (r)

Examples:
  filetable tui files.json
  filetable tui ./remote --max-depth 3
  filetable tui files.yaml --select ~/notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringArrayVar(&tuiSelect, "select", nil, "path to select initially (repeatable)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	source, err := resolveSource(args[0])
	if err != nil {
		return err
	}

	if appConfig.Verbose {
		fmt.Fprintf(os.Stderr, "Loading %s\n", source)
	}

	catalog, err := scanner.Load(appFs, source, appConfig)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	catalog.Selected = append(catalog.Selected, tuiSelect...)

	utils.Debug("loaded %d rows from %s (%d duplicates dropped)",
		catalog.Metadata.RowCount, source, catalog.Metadata.Duplicates)

	if appConfig.Verbose {
		fmt.Fprintf(os.Stderr, "Found %d files on %d devices\n",
			catalog.Metadata.RowCount, len(catalog.Metadata.Devices))
	}

	model := ui.NewAppModel(catalog)
	model.SetPageSize(appConfig.PageSize)
	model.SetReloader(func() (*models.Catalog, error) {
		return scanner.Load(appFs, source, appConfig)
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
