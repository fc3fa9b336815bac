// Package selection tracks which rows of a file table are selected.
//
// A Tracker is owned by a single model and is not safe for concurrent use.
// Every query is answered against the current row sequence; nothing derived
// from the rows is cached.
package selection

import (
	"fmt"

	"github.com/cheerioskun/filetable/internal/models"
)

// Tracker holds the selected paths for an ordered sequence of rows
type Tracker struct {
	rows     []models.Row
	index    map[string]int // path -> position in rows
	selected map[string]bool
}

// NewTracker creates a tracker for rows, seeded with the initial
// selection. Initial paths that do not match a row are dropped.
func NewTracker(rows []models.Row, initial []string) *Tracker {
	t := &Tracker{
		selected: make(map[string]bool),
	}
	t.SetRows(rows)

	for _, path := range initial {
		if _, ok := t.index[path]; ok {
			t.selected[path] = true
		}
	}

	return t
}

// SetRows replaces the row sequence. Rows repeating an earlier path are
// ignored. Selected paths that no longer match a row are pruned and
// returned; a pruned row that comes back later starts unselected.
func (t *Tracker) SetRows(rows []models.Row) []string {
	t.rows, _ = models.UniqueRows(rows)
	t.index = make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		t.index[row.Path] = i
	}

	var pruned []string
	for path := range t.selected {
		if _, ok := t.index[path]; !ok {
			delete(t.selected, path)
			pruned = append(pruned, path)
		}
	}
	return pruned
}

// ToggleRow flips the selection of the row with the given path
func (t *Tracker) ToggleRow(path string) error {
	if _, ok := t.index[path]; !ok {
		return fmt.Errorf("toggle %q: %w", path, ErrUnknownRow)
	}

	if t.selected[path] {
		delete(t.selected, path)
	} else {
		t.selected[path] = true
	}
	return nil
}

// ToggleAll selects every row unless all rows are already selected, in
// which case it clears the selection. A partial selection always moves to
// fully selected. With no rows it does nothing.
func (t *Tracker) ToggleAll() {
	if len(t.rows) == 0 {
		return
	}

	if t.AggregateState() == All {
		t.selected = make(map[string]bool)
		return
	}

	for _, row := range t.rows {
		t.selected[row.Path] = true
	}
}

// AggregateState summarises the selection against the current rows
func (t *Tracker) AggregateState() State {
	return Aggregate(len(t.selected), len(t.rows))
}

// Count returns the number of selected rows
func (t *Tracker) Count() int {
	return len(t.selected)
}

// IsSelected reports whether the row with the given path is selected
func (t *Tracker) IsSelected(path string) bool {
	return t.selected[path]
}

// Has reports whether a row with the given path is present
func (t *Tracker) Has(path string) bool {
	_, ok := t.index[path]
	return ok
}

// Selected returns the selected paths in row order
func (t *Tracker) Selected() []string {
	paths := make([]string, 0, len(t.selected))
	for _, row := range t.rows {
		if t.selected[row.Path] {
			paths = append(paths, row.Path)
		}
	}
	return paths
}

// Rows returns the current row sequence. The slice must not be modified.
func (t *Tracker) Rows() []models.Row {
	return t.rows
}

// Len returns the number of rows
func (t *Tracker) Len() int {
	return len(t.rows)
}

// EligibleForDownload returns the selected rows that are available, in
// row order. Selected rows with any other status are left out.
func (t *Tracker) EligibleForDownload() []models.Row {
	var eligible []models.Row
	for _, row := range t.rows {
		if t.selected[row.Path] && row.IsAvailable() {
			eligible = append(eligible, row)
		}
	}
	return eligible
}
