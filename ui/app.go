package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/filetable/internal/download"
	"github.com/cheerioskun/filetable/internal/messages"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/selection"
	"github.com/cheerioskun/filetable/internal/utils"
	downloadui "github.com/cheerioskun/filetable/ui/download"
	"github.com/cheerioskun/filetable/ui/filetable"
	"github.com/dustin/go-humanize"
)

// AppModel represents the main application model
type AppModel struct {
	// Core state
	catalog *models.Catalog
	tracker *selection.Tracker

	// Components
	table *filetable.Model
	modal *downloadui.Model

	// UI state
	width  int
	height int

	// Status
	status   string
	quitting bool

	reload func() (*models.Catalog, error)
}

// NewAppModel creates the application for a catalog. The catalog's
// initial selection seeds the tracker.
func NewAppModel(catalog *models.Catalog) *AppModel {
	tracker := selection.NewTracker(catalog.Rows, catalog.Selected)

	m := &AppModel{
		catalog: catalog,
		tracker: tracker,
		table:   filetable.NewModel(tracker),
		modal:   downloadui.NewModel(),
		width:   80,
		height:  24,
		status:  "Ready",
	}
	m.table.SetSize(m.width, m.tableHeight())
	m.modal.SetSize(m.width, m.height)
	return m
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetSize(m.width, m.tableHeight())
		m.modal.SetSize(m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		// The overlay takes every key while it is shown
		if m.modal.IsVisible() {
			m.modal, cmd = m.modal.Update(msg)
			return m, cmd
		}

		if msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}

		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case messages.SelectionChangedMsg:
		m.status = fmt.Sprintf("%d selected (%s)", msg.Count, msg.State)
		return m, nil

	case messages.DownloadRequestedMsg:
		m.openDownload()
		return m, nil

	case messages.DownloadClosedMsg:
		m.status = "Download closed"
		m.table.Focus()
		return m, nil

	case messages.ReloadRequestedMsg:
		if m.reload == nil {
			m.status = "Reload not available"
			return m, nil
		}
		m.status = "Reloading..."
		return m, m.reloadCmd()

	case messages.RowsUpdatedMsg:
		m.table, cmd = m.table.Update(msg)
		m.refreshCatalog()
		m.refreshDownload()
		m.status = fmt.Sprintf("Loaded %d files", m.tracker.Len())
		return m, cmd

	case messages.StatusMsg:
		m.status = msg.Text
		return m, nil
	}

	return m, nil
}

// openDownload shows the confirmation overlay for the current selection.
// With nothing selected the request is ignored.
func (m *AppModel) openDownload() {
	if m.tracker.Count() == 0 {
		m.status = "Nothing selected"
		return
	}

	intent := download.Build(m.tracker)
	utils.Debug("download requested: %d eligible, %d skipped", intent.Count(), len(intent.Skipped))

	m.table.Blur()
	m.modal.Show(intent)
	m.status = fmt.Sprintf("%d of %d selected file(s) available", intent.Count(), m.tracker.Count())
}

// reloadCmd loads the source again off the update loop
func (m *AppModel) reloadCmd() tea.Cmd {
	load := m.reload
	return func() tea.Msg {
		catalog, err := load()
		if err != nil {
			utils.Warning("reload failed: %v", err)
			return messages.StatusMsg{Text: fmt.Sprintf("Reload failed: %v", err)}
		}
		return messages.RowsUpdatedMsg{Rows: catalog.Rows}
	}
}

// refreshCatalog rebuilds the catalog totals from the tracker's rows
func (m *AppModel) refreshCatalog() {
	catalog := models.NewCatalog(m.catalog.Source, m.catalog.Kind)
	for _, row := range m.tracker.Rows() {
		catalog.AddRow(row)
	}
	catalog.Selected = m.tracker.Selected()
	m.catalog = catalog
}

// refreshDownload keeps an open overlay in line with the current rows.
// The overlay closes once nothing is selected.
func (m *AppModel) refreshDownload() {
	if !m.modal.IsVisible() {
		return
	}
	if m.tracker.Count() == 0 {
		m.modal.Hide()
		m.table.Focus()
		return
	}
	m.modal.Show(download.Build(m.tracker))
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}

	if m.modal.IsVisible() {
		return m.modal.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.table.View(),
		m.renderStatusBar(),
	)
}

// renderHeader creates the application header
func (m *AppModel) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("filetable")

	source := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(fmt.Sprintf("%s: %s", m.catalog.Kind, m.catalog.Source))

	return lipgloss.JoinVertical(lipgloss.Left, title, source)
}

// renderStatusBar renders the status line
func (m *AppModel) renderStatusBar() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	parts := []string{
		fmt.Sprintf("Files: %d/%d selected", m.tracker.Count(), m.tracker.Len()),
		fmt.Sprintf("Size: %s", humanize.IBytes(uint64(m.catalog.TotalSize))),
		fmt.Sprintf("Devices: %d", len(m.catalog.Metadata.Devices)),
		fmt.Sprintf("Status: %s", m.status),
		"q: Quit",
	}

	return style.Render(strings.Join(parts, " | "))
}

func (m *AppModel) tableHeight() int {
	// header (2 lines) and status bar (1 line)
	if h := m.height - 3; h > 1 {
		return h
	}
	return 1
}

// SetReloader sets the function the reload key uses to load the source
// again. Without one the reload key only reports that it is unavailable.
func (m *AppModel) SetReloader(reload func() (*models.Catalog, error)) {
	m.reload = reload
}

// SetPageSize sets the table's paging step
func (m *AppModel) SetPageSize(n int) {
	m.table.SetPageSize(n)
}

// Tracker returns the selection tracker
func (m *AppModel) Tracker() *selection.Tracker {
	return m.tracker
}

// Status returns the status line text
func (m *AppModel) Status() string {
	return m.status
}

// DownloadVisible reports whether the confirmation overlay is shown
func (m *AppModel) DownloadVisible() bool {
	return m.modal.IsVisible()
}
