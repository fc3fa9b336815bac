package scanner

import (
	"fmt"

	"github.com/cheerioskun/filetable/internal/config"
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/spf13/afero"
)

// Load builds a catalog from source, which is either a manifest file or a
// directory to scan.
func Load(fs afero.Fs, source string, cfg *config.Config) (*models.Catalog, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	info, err := fs.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to access source %s: %w", source, err)
	}

	if !info.IsDir() {
		if !IsManifest(source) {
			return nil, fmt.Errorf("%s: %w", source, ErrUnsupportedManifest)
		}
		return ReadManifest(fs, source)
	}

	ds := NewDirectoryScanner(fs)
	ds.SetMaxDepth(cfg.MaxDepth)
	ds.SetShowHidden(cfg.ShowHidden)
	ds.SetDefaultDevice(cfg.DefaultDevice)
	if len(cfg.PendingSuffixes) > 0 {
		ds.SetPendingSuffixes(cfg.PendingSuffixes)
	}

	return ds.ScanCatalog(source)
}
