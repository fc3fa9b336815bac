package models

import (
	"sort"
	"time"
)

// SourceKind tells where a catalog was loaded from
type SourceKind string

const (
	SourceManifest  SourceKind = "manifest"
	SourceDirectory SourceKind = "directory"
)

// Catalog is the ordered list of remote files offered in the file table
type Catalog struct {
	Source    string          `json:"source"`     // Manifest path or scanned root
	Kind      SourceKind      `json:"kind"`       // How the catalog was produced
	Rows      []Row           `json:"rows"`       // Rows in display order
	Selected  []string        `json:"selected"`   // Initial selection, if any
	TotalSize int64           `json:"total_size"` // Sum of row sizes
	Metadata  CatalogMetadata `json:"metadata"`   // Aggregate information
	LoadTime  time.Time       `json:"load_time"`  // When the catalog was loaded
}

// CatalogMetadata contains aggregate information about the catalog
type CatalogMetadata struct {
	RowCount     int            `json:"row_count"`     // Number of rows
	StatusCounts map[Status]int `json:"status_counts"` // Rows per status
	Devices      []string       `json:"devices"`       // Distinct devices, sorted
	Duplicates   int            `json:"duplicates"`    // Rows dropped for a repeated path
	ScanDepth    int            `json:"scan_depth"`    // Directory depth scanned (directory catalogs)
}

// NewCatalog creates an empty catalog for the given source
func NewCatalog(source string, kind SourceKind) *Catalog {
	return &Catalog{
		Source: source,
		Kind:   kind,
		Rows:   make([]Row, 0),
		Metadata: CatalogMetadata{
			StatusCounts: make(map[Status]int),
			Devices:      make([]string, 0),
		},
		LoadTime: time.Now(),
	}
}

// AddRow appends a row and updates the metadata. A row whose path is
// already present is counted as a duplicate and not added.
func (c *Catalog) AddRow(row Row) bool {
	if c.RowByPath(row.Path) != nil {
		c.Metadata.Duplicates++
		return false
	}

	c.Rows = append(c.Rows, row)
	c.TotalSize += row.Size
	c.Metadata.RowCount++
	c.Metadata.StatusCounts[row.Status]++

	if row.Device != "" {
		i := sort.SearchStrings(c.Metadata.Devices, row.Device)
		if i == len(c.Metadata.Devices) || c.Metadata.Devices[i] != row.Device {
			c.Metadata.Devices = append(c.Metadata.Devices, "")
			copy(c.Metadata.Devices[i+1:], c.Metadata.Devices[i:])
			c.Metadata.Devices[i] = row.Device
		}
	}
	return true
}

// RowByPath returns the row with the given path, or nil if not found
func (c *Catalog) RowByPath(path string) *Row {
	for i := range c.Rows {
		if c.Rows[i].Path == path {
			return &c.Rows[i]
		}
	}
	return nil
}

// Paths returns every row path in display order
func (c *Catalog) Paths() []string {
	paths := make([]string, len(c.Rows))
	for i, row := range c.Rows {
		paths[i] = row.Path
	}
	return paths
}

// AvailableRows returns the rows whose status permits download
func (c *Catalog) AvailableRows() []Row {
	var rows []Row
	for _, row := range c.Rows {
		if row.IsAvailable() {
			rows = append(rows, row)
		}
	}
	return rows
}
