package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"available", StatusAvailable},
		{"  Scheduled ", StatusScheduled},
		{"TRANSFERRING", StatusTransferring},
		{"failed", StatusFailed},
		{"bogus", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.in))
		})
	}
}

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(Row{Path: "~/a.bar", Status: StatusScheduled})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"scheduled"`)

	var row Row
	require.NoError(t, json.Unmarshal([]byte(`{"path":"~/b.bar","status":"available"}`), &row))
	assert.Equal(t, StatusAvailable, row.Status)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "given", Row{Path: "~/x/y.bar", Name: "given"}.DisplayName())
	assert.Equal(t, "y.bar", Row{Path: "~/x/y.bar"}.DisplayName())
	assert.Equal(t, "plain", Row{Path: "plain"}.DisplayName())
	assert.Equal(t, "dir/", Row{Path: "dir/"}.DisplayName())
}

func TestUniqueRows(t *testing.T) {
	rows, dropped := UniqueRows([]Row{
		{Path: "a", Device: "first"},
		{Path: "b"},
		{Path: "a", Device: "second"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "first", rows[0].Device)
	assert.Equal(t, "b", rows[1].Path)
}

func TestCatalogAddRow(t *testing.T) {
	c := NewCatalog("manifest.json", SourceManifest)

	assert.True(t, c.AddRow(Row{Path: "a", Device: "Zed", Status: StatusAvailable, Size: 10}))
	assert.True(t, c.AddRow(Row{Path: "b", Device: "Baz", Status: StatusScheduled, Size: 5}))
	assert.True(t, c.AddRow(Row{Path: "c", Device: "Baz", Status: StatusAvailable}))
	assert.False(t, c.AddRow(Row{Path: "a", Device: "Other"}))

	assert.Equal(t, 3, c.Metadata.RowCount)
	assert.Equal(t, 1, c.Metadata.Duplicates)
	assert.Equal(t, int64(15), c.TotalSize)
	assert.Equal(t, []string{"Baz", "Zed"}, c.Metadata.Devices)
	assert.Equal(t, 2, c.Metadata.StatusCounts[StatusAvailable])
	assert.Equal(t, []string{"a", "b", "c"}, c.Paths())

	available := c.AvailableRows()
	require.Len(t, available, 2)
	assert.Equal(t, "a", available[0].Path)
	assert.Equal(t, "c", available[1].Path)

	require.NotNil(t, c.RowByPath("b"))
	assert.Nil(t, c.RowByPath("missing"))
}
