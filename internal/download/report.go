package download

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format selects how an intent is rendered
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
	}
}

// Service writes download intents to the filesystem
type Service struct {
	fs afero.Fs
}

// NewService creates a new report service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// ReportOptions contains configuration for writing a report file
type ReportOptions struct {
	DestinationPath string
	Format          Format
	Overwrite       bool
}

// WriteReport renders the intent into a file
func (s *Service) WriteReport(intent *Intent, opts ReportOptions) error {
	if intent == nil {
		return fmt.Errorf("invalid intent")
	}
	if strings.TrimSpace(opts.DestinationPath) == "" {
		return fmt.Errorf("report path cannot be empty")
	}

	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.DestinationPath); err != nil {
			return fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return fmt.Errorf("destination file exists and overwrite is disabled: %s", opts.DestinationPath)
		}
	}

	dir := filepath.Dir(opts.DestinationPath)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := s.fs.Create(opts.DestinationPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := Render(f, intent, opts.Format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Render writes the intent to w in the given format
func Render(w io.Writer, intent *Intent, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(intent)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(intent); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, RenderText(intent))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// RenderText renders the intent as a table followed by a summary line
func RenderText(intent *Intent) string {
	if intent.IsEmpty() {
		var b strings.Builder
		b.WriteString("No selected files are available for download\n")
		if len(intent.Skipped) > 0 {
			fmt.Fprintf(&b, "%d selected file(s) skipped\n", len(intent.Skipped))
		}
		return b.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DEVICE", "PATH", "SIZE")
	for _, row := range intent.Rows {
		t.Row(row.Device, row.Path, formatSize(row.Size))
	}

	summary := fmt.Sprintf("%d file(s) from %d device(s), %s",
		intent.Count(), len(intent.Devices), humanize.IBytes(uint64(intent.TotalSize)))
	if len(intent.Skipped) > 0 {
		summary += fmt.Sprintf(", %d skipped", len(intent.Skipped))
	}

	return t.String() + "\n" + summary + "\n"
}

func formatSize(size int64) string {
	if size <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}
