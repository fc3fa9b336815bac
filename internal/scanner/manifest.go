package scanner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/utils"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedManifest is returned for manifest files with an unknown extension
	ErrUnsupportedManifest = errors.New("unsupported manifest format")
	// ErrInvalidManifest is returned when a manifest decodes but is unusable
	ErrInvalidManifest = errors.New("invalid manifest")
)

// manifestFile is one entry of a manifest, as written by the remote side
type manifestFile struct {
	Path         string    `json:"path" yaml:"path" toml:"path"`
	Name         string    `json:"name" yaml:"name" toml:"name"`
	Device       string    `json:"device" yaml:"device" toml:"device"`
	Status       string    `json:"status" yaml:"status" toml:"status"`
	Size         int64     `json:"size" yaml:"size" toml:"size"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified" toml:"last_modified"`
}

// manifest lists remote files and an optional initial selection
type manifest struct {
	Files    []manifestFile `json:"files" yaml:"files" toml:"files"`
	Selected []string       `json:"selected" yaml:"selected" toml:"selected"`
}

// IsManifest reports whether path has a manifest extension
func IsManifest(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// ReadManifest loads a manifest file into a catalog
func ReadManifest(fs afero.Fs, path string) (*models.Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	m, err := decodeManifest(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	catalog := models.NewCatalog(path, models.SourceManifest)
	for i, f := range m.Files {
		if strings.TrimSpace(f.Path) == "" {
			return nil, fmt.Errorf("file entry %d has no path: %w", i, ErrInvalidManifest)
		}

		status := models.ParseStatus(f.Status)
		if status == models.StatusUnknown && f.Status != "" {
			utils.Warning("manifest %s: unknown status %q for %s", path, f.Status, f.Path)
		}

		if !catalog.AddRow(models.Row{
			Path:         f.Path,
			Name:         f.Name,
			Device:       f.Device,
			Status:       status,
			Size:         f.Size,
			LastModified: f.LastModified,
		}) {
			utils.Warning("manifest %s: duplicate path %s ignored", path, f.Path)
		}
	}
	catalog.Selected = m.Selected

	return catalog, nil
}

func decodeManifest(ext string, data []byte) (*manifest, error) {
	var m manifest

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedManifest, ext)
	}

	return &m, nil
}
