package selection

import (
	"fmt"
	"testing"

	"github.com/cheerioskun/filetable/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(path string, status models.Status) models.Row {
	return models.Row{Path: path, Name: "foo.bar", Device: "Baz", Status: status}
}

func twoFiles() []models.Row {
	return []models.Row{
		file("~/foo1.bar", models.StatusAvailable),
		file("~/foo2.bar", models.StatusAvailable),
	}
}

func TestEmptyTracker(t *testing.T) {
	tr := NewTracker(nil, nil)

	assert.Equal(t, None, tr.AggregateState())
	assert.Equal(t, 0, tr.Count())
	assert.Empty(t, tr.Selected())
	assert.Empty(t, tr.EligibleForDownload())
}

func TestToggleAllWithNoRowsIsNoop(t *testing.T) {
	tr := NewTracker(nil, nil)
	tr.ToggleAll()

	assert.Equal(t, None, tr.AggregateState())
	assert.Equal(t, 0, tr.Count())
}

func TestToggleRowTwiceRestoresSelection(t *testing.T) {
	rows := []models.Row{
		file("a", models.StatusAvailable),
		file("b", models.StatusScheduled),
		file("c", models.StatusAvailable),
	}

	for _, initial := range [][]string{nil, {"a"}, {"b", "c"}, {"a", "b", "c"}} {
		for _, row := range rows {
			t.Run(fmt.Sprintf("%v/%s", initial, row.Path), func(t *testing.T) {
				tr := NewTracker(rows, initial)
				before := tr.Selected()

				require.NoError(t, tr.ToggleRow(row.Path))
				assert.NotEqual(t, tr.IsSelected(row.Path), contains(before, row.Path))
				require.NoError(t, tr.ToggleRow(row.Path))

				assert.Equal(t, before, tr.Selected())
			})
		}
	}
}

func TestToggleUnknownRow(t *testing.T) {
	tr := NewTracker(twoFiles(), []string{"~/foo1.bar"})

	err := tr.ToggleRow("~/missing.bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRow)
	assert.Equal(t, []string{"~/foo1.bar"}, tr.Selected())
}

func TestToggleAll(t *testing.T) {
	rows := []models.Row{
		file("a", models.StatusAvailable),
		file("b", models.StatusAvailable),
		file("c", models.StatusAvailable),
	}

	tests := []struct {
		name      string
		initial   []string
		wantState State
		wantCount int
	}{
		{"from none", nil, All, 3},
		{"from some", []string{"b"}, All, 3},
		{"from all", []string{"a", "b", "c"}, None, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(rows, tt.initial)
			tr.ToggleAll()

			assert.Equal(t, tt.wantState, tr.AggregateState())
			assert.Equal(t, tt.wantCount, tr.Count())
			if tt.wantState == All {
				assert.Equal(t, []string{"a", "b", "c"}, tr.Selected())
			}
		})
	}
}

func TestAggregateStateForEverySubset(t *testing.T) {
	rows := []models.Row{
		file("a", models.StatusAvailable),
		file("b", models.StatusAvailable),
		file("c", models.StatusAvailable),
	}

	for mask := 0; mask < 1<<len(rows); mask++ {
		var subset []string
		for i, row := range rows {
			if mask&(1<<i) != 0 {
				subset = append(subset, row.Path)
			}
		}

		tr := NewTracker(rows, subset)

		want := Some
		switch len(subset) {
		case 0:
			want = None
		case len(rows):
			want = All
		}
		assert.Equal(t, want, tr.AggregateState(), "subset %v", subset)
		assert.Equal(t, len(subset), tr.Count())
	}
}

func TestEligibleForDownload(t *testing.T) {
	rows := []models.Row{
		file("a", models.StatusAvailable),
		file("b", models.StatusScheduled),
	}
	tr := NewTracker(rows, nil)
	require.NoError(t, tr.ToggleRow("a"))
	require.NoError(t, tr.ToggleRow("b"))

	eligible := tr.EligibleForDownload()
	require.Len(t, eligible, 1)
	assert.Equal(t, "a", eligible[0].Path)
}

func TestEligibleForDownloadKeepsRowOrder(t *testing.T) {
	rows := []models.Row{
		file("c", models.StatusAvailable),
		file("a", models.StatusFailed),
		file("b", models.StatusAvailable),
	}
	tr := NewTracker(rows, []string{"b", "a", "c"})

	eligible := tr.EligibleForDownload()
	require.Len(t, eligible, 2)
	assert.Equal(t, "c", eligible[0].Path)
	assert.Equal(t, "b", eligible[1].Path)
}

func TestClickScenarios(t *testing.T) {
	t.Run("toggle one row", func(t *testing.T) {
		tr := NewTracker(twoFiles(), nil)
		assert.Equal(t, 0, tr.Count())

		require.NoError(t, tr.ToggleRow("~/foo1.bar"))
		assert.Equal(t, 1, tr.Count())
		assert.True(t, tr.IsSelected("~/foo1.bar"))

		require.NoError(t, tr.ToggleRow("~/foo1.bar"))
		assert.Equal(t, 0, tr.Count())
		assert.False(t, tr.IsSelected("~/foo1.bar"))
	})

	t.Run("select all with none selected", func(t *testing.T) {
		tr := NewTracker(twoFiles(), []string{})
		tr.ToggleAll()
		assert.Equal(t, All, tr.AggregateState())
		assert.Equal(t, 2, tr.Count())
	})

	t.Run("select all with everything selected", func(t *testing.T) {
		tr := NewTracker(twoFiles(), []string{"~/foo1.bar", "~/foo2.bar"})
		tr.ToggleAll()
		assert.Equal(t, None, tr.AggregateState())
		assert.Equal(t, 0, tr.Count())
	})

	t.Run("download only available", func(t *testing.T) {
		rows := twoFiles()
		rows[1].Status = models.StatusScheduled
		tr := NewTracker(rows, nil)
		tr.ToggleAll()

		eligible := tr.EligibleForDownload()
		require.Len(t, eligible, 1)
		assert.Equal(t, "~/foo1.bar", eligible[0].Path)
	})
}

func TestSetRowsPrunesRemovedSelection(t *testing.T) {
	rows := twoFiles()
	tr := NewTracker(rows, []string{"~/foo1.bar", "~/foo2.bar"})
	require.Equal(t, All, tr.AggregateState())

	pruned := tr.SetRows(rows[1:])
	assert.Equal(t, []string{"~/foo1.bar"}, pruned)
	assert.Equal(t, 1, tr.Count())
	assert.Equal(t, All, tr.AggregateState())
	assert.False(t, tr.Has("~/foo1.bar"))

	// Re-added rows come back unselected.
	pruned = tr.SetRows(rows)
	assert.Empty(t, pruned)
	assert.Equal(t, Some, tr.AggregateState())
	assert.False(t, tr.IsSelected("~/foo1.bar"))
	assert.True(t, tr.IsSelected("~/foo2.bar"))
}

func TestSetRowsRecomputesAggregate(t *testing.T) {
	tr := NewTracker(twoFiles()[:1], []string{"~/foo1.bar"})
	require.Equal(t, All, tr.AggregateState())

	tr.SetRows(twoFiles())
	assert.Equal(t, Some, tr.AggregateState())
}

func TestInitialSelectionIgnoresUnknownPaths(t *testing.T) {
	tr := NewTracker(twoFiles(), []string{"~/foo2.bar", "~/gone.bar"})

	assert.Equal(t, 1, tr.Count())
	assert.Equal(t, []string{"~/foo2.bar"}, tr.Selected())
}

func TestDuplicatePathsAreOneRow(t *testing.T) {
	rows := append(twoFiles(), file("~/foo1.bar", models.StatusScheduled))
	tr := NewTracker(rows, nil)

	assert.Equal(t, 2, tr.Len())
	tr.ToggleAll()
	assert.Equal(t, All, tr.AggregateState())
	assert.Len(t, tr.EligibleForDownload(), 2)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "some", Some.String())
	assert.Equal(t, "all", All.String())
	assert.Equal(t, "unknown", State(42).String())
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
