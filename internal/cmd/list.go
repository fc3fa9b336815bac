package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/scanner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	quickList bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [source]",
	Short: "Print the files of a manifest or directory",
	Long: `Print the remote files a source provides, one row per file.

This command shows what the interactive table would offer:
- Device, status, path and size of every file
- Counts per status and the devices involved

Examples:
  filetable list files.json
  filetable list ./remote --max-depth 3
  filetable list ./remote --quick`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&quickList, "quick", false, "only count devices and top-level files of a directory")
}

func runList(cmd *cobra.Command, args []string) error {
	source, err := resolveSource(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if quickList {
		ds := scanner.NewDirectoryScanner(appFs)
		ds.SetShowHidden(appConfig.ShowHidden)
		if len(appConfig.PendingSuffixes) > 0 {
			ds.SetPendingSuffixes(appConfig.PendingSuffixes)
		}

		summary, err := ds.QuickScan(source)
		if err != nil {
			return fmt.Errorf("quick scan failed: %w", err)
		}

		fmt.Fprintln(out, "Quick Scan Results:")
		fmt.Fprintf(out, "  Devices: %d\n", summary.Devices)
		fmt.Fprintf(out, "  Top-level files: %d\n", summary.RootFiles)
		fmt.Fprintf(out, "  Pending: %d\n", summary.Pending)
		return nil
	}

	catalog, err := scanner.Load(appFs, source, appConfig)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	printCatalog(out, catalog)
	return nil
}

// printCatalog writes the catalog rows as a table followed by a summary
func printCatalog(w io.Writer, catalog *models.Catalog) {
	if len(catalog.Rows) == 0 {
		fmt.Fprintf(w, "No files in %s\n", catalog.Source)
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DEVICE", "STATUS", "PATH", "SIZE")
	for _, row := range catalog.Rows {
		size := "-"
		if row.Size > 0 {
			size = humanize.IBytes(uint64(row.Size))
		}
		t.Row(row.Device, row.Status.String(), row.Path, size)
	}
	fmt.Fprintln(w, t.String())

	fmt.Fprintf(w, "%d file(s) on %d device(s), %s\n",
		catalog.Metadata.RowCount, len(catalog.Metadata.Devices),
		humanize.IBytes(uint64(catalog.TotalSize)))

	var counts []string
	for _, status := range []models.Status{
		models.StatusAvailable,
		models.StatusScheduled,
		models.StatusTransferring,
		models.StatusFailed,
		models.StatusUnknown,
	} {
		if n := catalog.Metadata.StatusCounts[status]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s: %d", status, n))
		}
	}
	fmt.Fprintln(w, strings.Join(counts, ", "))

	if catalog.Metadata.Duplicates > 0 {
		fmt.Fprintf(w, "%d duplicate path(s) ignored\n", catalog.Metadata.Duplicates)
	}
}
