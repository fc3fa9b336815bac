package cmd

import (
	"fmt"

	"github.com/cheerioskun/filetable/internal/download"
	"github.com/cheerioskun/filetable/internal/scanner"
	"github.com/cheerioskun/filetable/internal/selection"
	"github.com/cheerioskun/filetable/internal/utils"
	"github.com/spf13/cobra"
)

var (
	selectPaths     []string
	selectAll       bool
	selectOutput    string
	selectOutFile   string
	selectOverwrite bool
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select [source]",
	Short: "Select files and print which of them can be downloaded",
	Long: `Apply selections to a source and print the download list.

Selections are applied in order on top of the source's initial selection:
each --path toggles one file, --all then toggles every file the way the
select-all control does. Only selected files that are available are
listed; the rest are reported as skipped.

Examples:
  filetable select files.json --path ~/foo1.bar --path ~/foo2.bar
  filetable select ./remote --all --output json
  filetable select files.yaml --all --output yaml --out intent.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringArrayVarP(&selectPaths, "path", "p", nil, "path to toggle (repeatable)")
	selectCmd.Flags().BoolVar(&selectAll, "all", false, "toggle the select-all control after the paths")
	selectCmd.Flags().StringVarP(&selectOutput, "output", "o", "text", "output format: text, json or yaml")
	selectCmd.Flags().StringVar(&selectOutFile, "out", "", "write the download list to a file instead of stdout")
	selectCmd.Flags().BoolVar(&selectOverwrite, "overwrite", false, "overwrite the --out file if it exists")
}

func runSelect(cmd *cobra.Command, args []string) error {
	format, err := download.ParseFormat(selectOutput)
	if err != nil {
		return err
	}

	source, err := resolveSource(args[0])
	if err != nil {
		return err
	}

	catalog, err := scanner.Load(appFs, source, appConfig)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	tracker := selection.NewTracker(catalog.Rows, catalog.Selected)
	for _, path := range selectPaths {
		if err := tracker.ToggleRow(path); err != nil {
			return err
		}
	}
	if selectAll {
		tracker.ToggleAll()
	}
	utils.Debug("select: %d of %d rows selected (%s)",
		tracker.Count(), tracker.Len(), tracker.AggregateState())

	intent := download.Build(tracker)

	if selectOutFile != "" {
		service := download.NewService(appFs)
		if err := service.WriteReport(intent, download.ReportOptions{
			DestinationPath: selectOutFile,
			Format:          format,
			Overwrite:       selectOverwrite,
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d file(s) to %s\n", intent.Count(), selectOutFile)
		return nil
	}

	return download.Render(cmd.OutOrStdout(), intent, format)
}
