package models

import (
	"fmt"
	"strings"
	"time"
)

// Status is the transfer state of a remote file
type Status int

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusScheduled
	StatusTransferring
	StatusFailed
)

var statusNames = map[Status]string{
	StatusUnknown:      "unknown",
	StatusAvailable:    "available",
	StatusScheduled:    "scheduled",
	StatusTransferring: "transferring",
	StatusFailed:       "failed",
}

// String returns the manifest spelling of the status
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParseStatus maps a manifest status string to a Status.
// Unrecognised values become StatusUnknown.
func ParseStatus(s string) Status {
	s = strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == s {
			return status
		}
	}
	return StatusUnknown
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// Row is one remote file shown in the file table
type Row struct {
	Path         string    `json:"path" yaml:"path"`                   // Unique identifier
	Name         string    `json:"name" yaml:"name"`                   // Display name
	Device       string    `json:"device" yaml:"device"`               // Device holding the file
	Status       Status    `json:"status" yaml:"status"`               // Transfer state
	Size         int64     `json:"size" yaml:"size"`                   // Size in bytes (0 if unknown)
	LastModified time.Time `json:"last_modified" yaml:"last_modified"` // Remote modification time
}

// IsAvailable reports whether the row can be offered for download
func (r Row) IsAvailable() bool {
	return r.Status == StatusAvailable
}

// DisplayName returns Name, falling back to the last path element
func (r Row) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if i := strings.LastIndexAny(r.Path, `/\`); i >= 0 && i < len(r.Path)-1 {
		return r.Path[i+1:]
	}
	return r.Path
}

// UniqueRows drops rows whose Path was already seen, keeping the first
// occurrence and the original order. The second return value is the number
// of dropped rows.
func UniqueRows(rows []Row) ([]Row, int) {
	seen := make(map[string]struct{}, len(rows))
	unique := make([]Row, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.Path]; ok {
			continue
		}
		seen[row.Path] = struct{}{}
		unique = append(unique, row)
	}
	return unique, len(rows) - len(unique)
}
