package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/cheerioskun/filetable/internal/download"
	"github.com/cheerioskun/filetable/internal/selection"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const manifestJSON = `{
  "files": [
    {"path": "~/foo1.bar", "name": "foo1.bar", "device": "Baz", "status": "available", "size": 1024},
    {"path": "~/foo2.bar", "name": "foo2.bar", "device": "Quux", "status": "scheduled", "size": 2048},
    {"path": "~/foo3.bar", "name": "foo3.bar", "device": "Quux", "status": "available", "size": 2048}
  ]
}`

// execute runs the root command against fs and returns its output. Flag
// variables are reset because cobra keeps them between runs.
func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	appFs = fs
	cfgFile = ""
	quickList = false
	tuiSelect = nil
	selectPaths = nil
	selectAll = false
	selectOutput = "text"
	selectOutFile = ""
	selectOverwrite = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "filetable.log")))

	err := rootCmd.Execute()
	return out.String(), err
}

func manifestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/m/files.json", []byte(manifestJSON), 0644))
	return fs
}

func TestListManifest(t *testing.T) {
	out, err := execute(t, manifestFs(t), "list", "/m/files.json")
	require.NoError(t, err)

	assert.Contains(t, out, "DEVICE")
	assert.Contains(t, out, "~/foo1.bar")
	assert.Contains(t, out, "scheduled")
	assert.Contains(t, out, "3 file(s) on 2 device(s), 5.0 KiB")
	assert.Contains(t, out, "available: 2, scheduled: 1")
}

func TestListDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/remote/laptop/notes.txt", []byte("hello"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/remote/phone/photo.jpg.part", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/remote/readme.md", []byte("x"), 0644))

	out, err := execute(t, fs, "list", "/remote")
	require.NoError(t, err)
	assert.Contains(t, out, "laptop")
	assert.Contains(t, out, "phone")
	assert.Contains(t, out, "3 file(s) on 3 device(s)")

	out, err = execute(t, fs, "list", "/remote", "--quick")
	require.NoError(t, err)
	assert.Contains(t, out, "Devices: 2")
	assert.Contains(t, out, "Top-level files: 1")
}

func TestListMissingSource(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "list", "/nowhere.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestSelectPathsText(t *testing.T) {
	out, err := execute(t, manifestFs(t), "select", "/m/files.json",
		"--path", "~/foo1.bar", "--path", "~/foo2.bar")
	require.NoError(t, err)

	assert.Contains(t, out, "~/foo1.bar")
	assert.NotContains(t, out, "~/foo2.bar")
	assert.Contains(t, out, "1 file(s) from 1 device(s), 1.0 KiB, 1 skipped")
}

func TestSelectAllJSON(t *testing.T) {
	out, err := execute(t, manifestFs(t), "select", "/m/files.json", "--all", "--output", "json")
	require.NoError(t, err)

	var intent download.Intent
	require.NoError(t, json.Unmarshal([]byte(out), &intent))
	assert.Equal(t, []string{"~/foo1.bar", "~/foo3.bar"}, intent.Paths())
	assert.Len(t, intent.Skipped, 1)
	assert.Equal(t, []string{"Baz", "Quux"}, intent.Devices)
}

func TestSelectAllAfterSomeSelectsEverything(t *testing.T) {
	out, err := execute(t, manifestFs(t), "select", "/m/files.json",
		"--path", "~/foo1.bar", "--all", "-o", "yaml")
	require.NoError(t, err)

	var intent download.Intent
	require.NoError(t, yaml.Unmarshal([]byte(out), &intent))
	assert.Equal(t, 2, intent.Count())
}

func TestSelectNothing(t *testing.T) {
	out, err := execute(t, manifestFs(t), "select", "/m/files.json")
	require.NoError(t, err)
	assert.Contains(t, out, "No selected files are available for download")
}

func TestSelectUnknownPath(t *testing.T) {
	_, err := execute(t, manifestFs(t), "select", "/m/files.json", "--path", "~/missing.bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, selection.ErrUnknownRow)
}

func TestSelectBadFormat(t *testing.T) {
	_, err := execute(t, manifestFs(t), "select", "/m/files.json", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestSelectWritesReport(t *testing.T) {
	fs := manifestFs(t)

	out, err := execute(t, fs, "select", "/m/files.json", "--all", "--out", "/reports/intent.json", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 2 file(s) to /reports/intent.json")

	data, err := afero.ReadFile(fs, "/reports/intent.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), "~/foo3.bar")

	_, err = execute(t, fs, "select", "/m/files.json", "--all", "--out", "/reports/intent.json")
	require.Error(t, err, "refuses to overwrite")

	_, err = execute(t, fs, "select", "/m/files.json", "--all", "--out", "/reports/intent.json", "--overwrite")
	require.NoError(t, err)
}

func TestTUIMissingSource(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "tui", "/nowhere.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestTUISelectKeepsCommas(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "tui", "/nowhere.json",
		"--select", "~/a,b.bar", "--select", "~/c.bar")
	require.Error(t, err)
	assert.Equal(t, []string{"~/a,b.bar", "~/c.bar"}, tuiSelect)
}
