package messages

import (
	"github.com/cheerioskun/filetable/internal/models"
	"github.com/cheerioskun/filetable/internal/selection"
)

// SelectionChangedMsg is sent after a row toggle or select-all
type SelectionChangedMsg struct {
	Count           int             // Number of currently selected rows
	State           selection.State // Aggregate state after the change
	SourceComponent string          // Which component sent this
}

// RowsUpdatedMsg replaces the rows shown in the file table
type RowsUpdatedMsg struct {
	Rows []models.Row
}

// ReloadRequestedMsg asks the application to load its source again
type ReloadRequestedMsg struct{}

// DownloadRequestedMsg is sent by the download-selected action
type DownloadRequestedMsg struct{}

// DownloadClosedMsg is sent when the download confirmation is closed
type DownloadClosedMsg struct{}

// StatusMsg sets the status line text
type StatusMsg struct {
	Text string
}
