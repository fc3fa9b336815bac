package download

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/filetable/internal/download"
	"github.com/cheerioskun/filetable/internal/messages"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intentFor(rows []models.Row) *download.Intent {
	tr := selection.NewTracker(rows, nil)
	tr.ToggleAll()
	return download.Build(tr)
}

func TestStartsHidden(t *testing.T) {
	m := NewModel()

	assert.Equal(t, Hidden, m.Visibility())
	assert.False(t, m.IsVisible())
	assert.Empty(t, m.View())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd, "close does nothing while hidden")
}

func TestShowListsAvailableFilesOnly(t *testing.T) {
	m := NewModel()
	m.SetSize(100, 30)

	m.Show(intentFor([]models.Row{
		{Path: "~/foo1.bar", Device: "Baz", Status: models.StatusAvailable, Size: 1024},
		{Path: "~/foo2.bar", Device: "Quux", Status: models.StatusScheduled},
	}))

	require.Equal(t, Shown, m.Visibility())
	view := m.View()
	assert.Contains(t, view, "Download selected files")
	assert.Contains(t, view, "Baz")
	assert.Contains(t, view, "~/foo1.bar")
	assert.NotContains(t, view, "~/foo2.bar")
	assert.NotContains(t, view, "Quux")
	assert.Contains(t, view, "1 file(s), 1.0 KiB")
	assert.Contains(t, view, "1 not available, skipped")
}

func TestShowWithNothingAvailable(t *testing.T) {
	m := NewModel()
	m.SetSize(100, 30)

	m.Show(intentFor([]models.Row{{Path: "~/late.bar", Device: "Baz", Status: models.StatusScheduled}}))

	view := m.View()
	assert.Contains(t, view, "None of the selected files are available yet.")
	assert.NotContains(t, view, "~/late.bar")
}

func TestCloseHides(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune{'c'}},
	} {
		t.Run(key.String(), func(t *testing.T) {
			m := NewModel()
			m.Show(intentFor([]models.Row{{Path: "a", Status: models.StatusAvailable}}))

			_, cmd := m.Update(key)
			require.NotNil(t, cmd)
			assert.Equal(t, messages.DownloadClosedMsg{}, cmd())
			assert.Equal(t, Hidden, m.Visibility())
			assert.Nil(t, m.Intent())
			assert.Empty(t, m.View())
		})
	}
}

func TestOtherKeysKeepOverlayShown(t *testing.T) {
	m := NewModel()
	m.Show(intentFor([]models.Row{{Path: "a", Status: models.StatusAvailable}}))

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyDown},
		{Type: tea.KeyUp},
		{Type: tea.KeyRunes, Runes: []rune{'a'}},
	} {
		_, cmd := m.Update(key)
		assert.Nil(t, cmd)
		assert.Equal(t, Shown, m.Visibility())
	}
}

func TestShowNilIntent(t *testing.T) {
	m := NewModel()
	m.Show(nil)

	require.NotNil(t, m.Intent())
	assert.True(t, m.Intent().IsEmpty())
	assert.Equal(t, "shown", m.Visibility().String())
}
