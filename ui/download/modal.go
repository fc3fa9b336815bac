package download

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/filetable/internal/download"
	"github.com/cheerioskun/filetable/internal/messages"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Styling
var (
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	deviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Margin(1, 0, 0, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Margin(1, 0, 0, 0)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

const (
	modalWidth   = 64
	maxListLines = 12
)

// Visibility is the state of the confirmation surface
type Visibility int

const (
	Hidden Visibility = iota
	Shown
)

// String returns a human-readable representation of the visibility
func (v Visibility) String() string {
	if v == Shown {
		return "shown"
	}
	return "hidden"
}

// Model is the download confirmation overlay. It lists the device and
// path of every selected file that is available; nothing is transferred.
type Model struct {
	visibility Visibility
	intent     *download.Intent
	width      int
	height     int
	list       viewport.Model
	close      key.Binding
	scrollUp   key.Binding
	scrollDown key.Binding
}

// NewModel creates a hidden confirmation overlay
func NewModel() *Model {
	return &Model{
		visibility: Hidden,
		list:       viewport.New(modalWidth-6, maxListLines),
		close: key.NewBinding(
			key.WithKeys("esc", "c", "enter"),
			key.WithHelp("esc", "close"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
		),
	}
}

// Show moves the overlay to Shown with the given intent
func (m *Model) Show(intent *download.Intent) {
	if intent == nil {
		intent = &download.Intent{}
	}
	m.intent = intent
	m.visibility = Shown
	m.list.SetContent(m.renderList())
	m.list.GotoTop()

	height := len(intent.Rows)
	if height < 1 {
		height = 1
	}
	if height > maxListLines {
		height = maxListLines
	}
	m.list.Height = height
}

// Hide moves the overlay to Hidden
func (m *Model) Hide() {
	m.visibility = Hidden
	m.intent = nil
}

// IsVisible returns true if the overlay is shown
func (m *Model) IsVisible() bool {
	return m.visibility == Shown
}

// Visibility returns the overlay state
func (m *Model) Visibility() Visibility {
	return m.visibility
}

// Intent returns the intent being shown, or nil when hidden
func (m *Model) Intent() *download.Intent {
	return m.intent
}

// SetSize sets the screen size the overlay is centered in
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages while the overlay is shown
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.IsVisible() {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.close):
			m.Hide()
			return m, func() tea.Msg { return messages.DownloadClosedMsg{} }
		case key.Matches(msg, m.scrollUp):
			m.list.LineUp(1)
		case key.Matches(msg, m.scrollDown):
			m.list.LineDown(1)
		}
	}

	return m, nil
}

// View renders the overlay centered on screen
func (m *Model) View() string {
	if !m.IsVisible() {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render("Download selected files"))

	if m.intent.IsEmpty() {
		parts = append(parts, emptyStyle.Render("None of the selected files are available yet."))
	} else {
		parts = append(parts, m.list.View())
	}

	parts = append(parts, summaryStyle.Render(m.renderSummary()))
	parts = append(parts, helpStyle.Render("esc: close"))

	box := modalStyle.Width(modalWidth).Render(strings.Join(parts, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderList renders one line per eligible row
func (m *Model) renderList() string {
	lines := make([]string, 0, len(m.intent.Rows))
	width := modalWidth - 6
	for _, row := range m.intent.Rows {
		device := runewidth.FillRight(runewidth.Truncate(row.Device, 12, "…"), 12)
		path := runewidth.Truncate(row.Path, width-13, "…")
		lines = append(lines, deviceStyle.Render(device)+" "+path)
	}
	return strings.Join(lines, "\n")
}

// renderSummary renders the counts below the list
func (m *Model) renderSummary() string {
	summary := fmt.Sprintf("%d file(s), %s", m.intent.Count(), humanize.IBytes(uint64(m.intent.TotalSize)))
	if n := len(m.intent.Skipped); n > 0 {
		summary += fmt.Sprintf(" · %d not available, skipped", n)
	}
	return summary
}
