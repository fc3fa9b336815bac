package filetable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/selection"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// Styles for table rendering
var (
	actionBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("250"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("86")).
				Bold(true)

	cursorRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusAvailable:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		models.StatusScheduled:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		models.StatusTransferring: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.StatusFailed:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

const (
	deviceWidth = 12
	statusWidth = 13
	sizeWidth   = 10
	minPath     = 10
)

// View renders the component
func (m *Model) View() string {
	actionBar := m.renderActionBar()
	header := headerStyle.Render(m.formatLine("   ", "DEVICE", "STATUS", "PATH", "SIZE"))

	var content string
	if m.tracker.Len() == 0 {
		content = emptyStyle.Render("No files")
	} else {
		content = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, actionBar, header, content, m.help.View(m.keys))
}

// renderActionBar renders the select-all control and the download action
func (m *Model) renderActionBar() string {
	selectAll := fmt.Sprintf("%s Selected %d", m.StatusIcon(), m.tracker.Count())
	download := actionStyle.Render("[d] Download selected")
	return actionBarStyle.Render(selectAll) + "   " + download
}

// updateViewportContent rebuilds the rows and keeps the cursor in view
func (m *Model) updateViewportContent() {
	rows := m.tracker.Rows()
	if len(rows) == 0 {
		m.viewport.SetContent("")
		return
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = m.renderRow(i, row)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.viewport.Height > 0 && m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// renderRow renders a single table line
func (m *Model) renderRow(i int, row models.Row) string {
	selected := m.tracker.IsSelected(row.Path)

	marker := " "
	if i == m.cursor && m.focused {
		marker = "›"
	}
	checkbox := "[ ]"
	if selected {
		checkbox = "[x]"
	}

	status := runewidth.FillRight(row.Status.String(), statusWidth)
	if style, ok := statusStyles[row.Status]; ok && !selected {
		status = style.Render(status)
	}

	line := m.formatLine(marker+checkbox, row.Device, status, row.Path, formatSize(row.Size))

	style := rowStyle
	if selected {
		style = selectedRowStyle
	}
	if i == m.cursor && m.focused {
		style = style.Inherit(cursorRowStyle)
	}
	return style.Render(line)
}

// formatLine lays out the table columns; status is passed pre-padded for rows
func (m *Model) formatLine(lead, device, status, path, size string) string {
	pathWidth := m.width - 4 - deviceWidth - statusWidth - sizeWidth - 5
	if pathWidth < minPath {
		pathWidth = minPath
	}

	return fmt.Sprintf("%s %s %s %s %s",
		runewidth.FillRight(lead, 4),
		runewidth.FillRight(runewidth.Truncate(device, deviceWidth, "…"), deviceWidth),
		runewidth.FillRight(status, statusWidth),
		runewidth.FillRight(runewidth.Truncate(path, pathWidth, "…"), pathWidth),
		runewidth.FillLeft(size, sizeWidth),
	)
}

// statusIcon maps the aggregate state to the select-all checkbox
func statusIcon(state selection.State) string {
	switch state {
	case selection.All:
		return "[x]"
	case selection.Some:
		return "[-]"
	default:
		return "[ ]"
	}
}

func formatSize(size int64) string {
	if size <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}
