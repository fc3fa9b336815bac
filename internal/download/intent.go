// Package download builds the confirmation list shown before a download.
//
// Nothing in this package moves bytes: an Intent only describes which of
// the selected files could be fetched.
package download

import (
	"sort"

	"github.com/cheerioskun/filetable/internal/models"
)

// Selection is the view of a selection tracker the builder needs
type Selection interface {
	Rows() []models.Row
	IsSelected(path string) bool
}

// Intent is the set of selected rows offered for download
type Intent struct {
	Rows      []models.Row `json:"rows" yaml:"rows"`             // Selected and available, in row order
	Skipped   []models.Row `json:"skipped" yaml:"skipped"`       // Selected but not available
	TotalSize int64        `json:"total_size" yaml:"total_size"` // Sum of eligible row sizes
	Devices   []string     `json:"devices" yaml:"devices"`       // Distinct devices of eligible rows
}

// Build derives the download intent from the current selection
func Build(sel Selection) *Intent {
	intent := &Intent{
		Rows:    make([]models.Row, 0),
		Skipped: make([]models.Row, 0),
		Devices: make([]string, 0),
	}

	devices := make(map[string]struct{})
	for _, row := range sel.Rows() {
		if !sel.IsSelected(row.Path) {
			continue
		}
		if !row.IsAvailable() {
			intent.Skipped = append(intent.Skipped, row)
			continue
		}

		intent.Rows = append(intent.Rows, row)
		intent.TotalSize += row.Size
		if row.Device != "" {
			if _, ok := devices[row.Device]; !ok {
				devices[row.Device] = struct{}{}
				intent.Devices = append(intent.Devices, row.Device)
			}
		}
	}
	sort.Strings(intent.Devices)

	return intent
}

// IsEmpty returns true if no selected row is available
func (i *Intent) IsEmpty() bool {
	return len(i.Rows) == 0
}

// Count returns the number of eligible rows
func (i *Intent) Count() int {
	return len(i.Rows)
}

// Contains checks if a path is among the eligible rows
func (i *Intent) Contains(path string) bool {
	for _, row := range i.Rows {
		if row.Path == path {
			return true
		}
	}
	return false
}

// Paths returns the eligible paths in row order
func (i *Intent) Paths() []string {
	paths := make([]string, len(i.Rows))
	for n, row := range i.Rows {
		paths[n] = row.Path
	}
	return paths
}
