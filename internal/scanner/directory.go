package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/utils"
	"github.com/spf13/afero"
)

// DirectoryScanner builds a catalog from a directory tree. Each top-level
// directory is treated as a device; files directly under the root belong
// to the default device.
type DirectoryScanner struct {
	fs            afero.Fs
	maxDepth      int
	showHidden    bool
	defaultDevice string
	pendingExts   map[string]bool
}

// NewDirectoryScanner creates a new DirectoryScanner with the given filesystem
func NewDirectoryScanner(fs afero.Fs) *DirectoryScanner {
	return &DirectoryScanner{
		fs:            fs,
		maxDepth:      10, // Default max depth
		defaultDevice: "local",
		pendingExts: map[string]bool{
			".part":       true,
			".crdownload": true,
			".pending":    true,
		},
	}
}

// SetMaxDepth sets the maximum scanning depth
func (ds *DirectoryScanner) SetMaxDepth(depth int) {
	ds.maxDepth = depth
}

// SetShowHidden controls whether dot files and directories are listed
func (ds *DirectoryScanner) SetShowHidden(show bool) {
	ds.showHidden = show
}

// SetDefaultDevice sets the device name for files directly under the root
func (ds *DirectoryScanner) SetDefaultDevice(device string) {
	if device != "" {
		ds.defaultDevice = device
	}
}

// SetPendingSuffixes replaces the suffixes that mark a file as scheduled
func (ds *DirectoryScanner) SetPendingSuffixes(suffixes []string) {
	ds.pendingExts = make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		ds.AddPendingSuffix(s)
	}
}

// AddPendingSuffix adds a suffix that marks a file as scheduled
func (ds *DirectoryScanner) AddPendingSuffix(ext string) {
	ext = strings.ToLower(ext)
	if ext == "" {
		return
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	ds.pendingExts[ext] = true
}

// ScanCatalog scans a directory and returns a Catalog with all discovered files
func (ds *DirectoryScanner) ScanCatalog(path string) (*models.Catalog, error) {
	// Verify path exists and is a directory
	info, err := ds.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path %s: %w", path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", path)
	}

	catalog := models.NewCatalog(path, models.SourceDirectory)
	catalog.Metadata.ScanDepth = ds.maxDepth

	if err := ds.scanDirectory(path, "", 0, catalog); err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	return catalog, nil
}

// scanDirectory recursively scans a directory and adds files to the catalog
func (ds *DirectoryScanner) scanDirectory(basePath, relativePath string, depth int, catalog *models.Catalog) error {
	if depth > ds.maxDepth {
		return nil // Skip if max depth exceeded
	}

	currentPath := filepath.Join(basePath, relativePath)

	entries, err := afero.ReadDir(ds.fs, currentPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", currentPath, err)
	}

	for _, entry := range entries {
		if !ds.showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		entryRelPath := filepath.Join(relativePath, entry.Name())

		if entry.IsDir() {
			if err := ds.scanDirectory(basePath, entryRelPath, depth+1, catalog); err != nil {
				// Log warning but continue scanning
				utils.Warning("failed to scan directory %s: %v", entryRelPath, err)
			}
			continue
		}

		catalog.AddRow(ds.processFile(entryRelPath, entry))
	}

	return nil
}

// processFile turns a single file into a row
func (ds *DirectoryScanner) processFile(relativePath string, info os.FileInfo) models.Row {
	slashed := filepath.ToSlash(relativePath)

	device := ds.defaultDevice
	if i := strings.Index(slashed, "/"); i > 0 {
		device = slashed[:i]
	}

	status := models.StatusAvailable
	if ds.isPending(relativePath) {
		status = models.StatusScheduled
	}

	return models.Row{
		Path:         slashed,
		Name:         info.Name(),
		Device:       device,
		Status:       status,
		Size:         info.Size(),
		LastModified: info.ModTime(),
	}
}

// isPending reports whether the file carries an in-progress suffix
func (ds *DirectoryScanner) isPending(path string) bool {
	return ds.pendingExts[strings.ToLower(filepath.Ext(path))]
}

// QuickSummary holds top-level counts from QuickScan
type QuickSummary struct {
	Devices   int
	RootFiles int
	Pending   int
}

// QuickScan counts devices and root files without descending into devices
func (ds *DirectoryScanner) QuickScan(path string) (*QuickSummary, error) {
	info, err := ds.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path %s: %w", path, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", path)
	}

	entries, err := afero.ReadDir(ds.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	summary := &QuickSummary{}
	for _, entry := range entries {
		if !ds.showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.IsDir() {
			summary.Devices++
			continue
		}
		summary.RootFiles++
		if ds.isPending(entry.Name()) {
			summary.Pending++
		}
	}

	return summary, nil
}
