package filetable

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/filetable/internal/messages"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/selection"
	"github.com/cheerioskun/filetable/internal/utils"
)

// ComponentName identifies this component in messages
const ComponentName = "filetable"

// Model is the file table: an action bar with the select-all control, a
// header and one line per row.
type Model struct {
	// Data
	tracker *selection.Tracker

	// UI state
	cursor   int
	pageSize int
	focused  bool
	width    int
	height   int
	viewport viewport.Model
	keys     KeyMap
	help     help.Model
}

// NewModel creates a file table backed by tracker
func NewModel(tracker *selection.Tracker) *Model {
	vp := viewport.New(80, 10) // Initial size, will be updated in SetSize

	m := &Model{
		tracker:  tracker,
		focused:  true,
		width:    80,
		height:   14,
		viewport: vp,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
	m.updateViewportContent()
	return m
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.RowsUpdatedMsg:
		before := m.tracker.Count()
		if pruned := m.tracker.SetRows(msg.Rows); len(pruned) > 0 {
			utils.Debug("pruned %d selected paths no longer listed: %v", len(pruned), pruned)
		}
		m.clampCursor()
		m.updateViewportContent()
		if m.tracker.Count() != before {
			return m, m.selectionChanged()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Toggle):
			row, ok := m.CurrentRow()
			if !ok {
				return m, nil
			}
			return m, m.Toggle(row.Path)

		case key.Matches(msg, m.keys.SelectAll):
			return m, m.ToggleAll()

		case key.Matches(msg, m.keys.Download):
			return m, func() tea.Msg { return messages.DownloadRequestedMsg{} }

		case key.Matches(msg, m.keys.Reload):
			return m, func() tea.Msg { return messages.ReloadRequestedMsg{} }

		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.pageStep())
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.pageStep())
		case key.Matches(msg, m.keys.Top):
			m.moveCursor(-m.tracker.Len())
		case key.Matches(msg, m.keys.Bottom):
			m.moveCursor(m.tracker.Len())
		}
	}

	return m, nil
}

// Toggle flips the selection of one row. Unknown paths are logged and
// otherwise ignored, since the rows may have changed under the caller.
func (m *Model) Toggle(path string) tea.Cmd {
	if err := m.tracker.ToggleRow(path); err != nil {
		utils.Debug("ignoring toggle: %v", err)
		return nil
	}
	m.updateViewportContent()
	return m.selectionChanged()
}

// ToggleAll runs the select-all control
func (m *Model) ToggleAll() tea.Cmd {
	if m.tracker.Len() == 0 {
		return nil
	}
	m.tracker.ToggleAll()
	m.updateViewportContent()
	return m.selectionChanged()
}

func (m *Model) selectionChanged() tea.Cmd {
	msg := messages.SelectionChangedMsg{
		Count:           m.tracker.Count(),
		State:           m.tracker.AggregateState(),
		SourceComponent: ComponentName,
	}
	return func() tea.Msg { return msg }
}

// CurrentRow returns the row under the cursor
func (m *Model) CurrentRow() (models.Row, bool) {
	rows := m.tracker.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return models.Row{}, false
	}
	return rows[m.cursor], true
}

// Cursor returns the cursor position
func (m *Model) Cursor() int {
	return m.cursor
}

// RowCount returns the number of rendered rows
func (m *Model) RowCount() int {
	return m.tracker.Len()
}

// IsRowSelected reports whether the i-th row is highlighted as selected
func (m *Model) IsRowSelected(i int) bool {
	rows := m.tracker.Rows()
	if i < 0 || i >= len(rows) {
		return false
	}
	return m.tracker.IsSelected(rows[i].Path)
}

// StatusIcon returns the select-all checkbox for the aggregate state
func (m *Model) StatusIcon() string {
	return statusIcon(m.tracker.AggregateState())
}

// SetPageSize sets how many rows page up and page down move. Zero pages
// by the visible height.
func (m *Model) SetPageSize(n int) {
	m.pageSize = n
}

func (m *Model) pageStep() int {
	if m.pageSize > 0 {
		return m.pageSize
	}
	return max(m.viewport.Height, 1)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
	m.updateViewportContent()
}

func (m *Model) clampCursor() {
	if n := m.tracker.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Component interface methods

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) IsFocused() bool {
	return m.focused
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Account for action bar, header and help line
	viewportHeight := height - 4
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight
	m.help.Width = width

	m.updateViewportContent()
}
