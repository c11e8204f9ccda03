package export

import "errors"

var (
	// ErrExportCancelled means the user dismissed the save prompt. It is a
	// no-op outcome, not a failure.
	ErrExportCancelled = errors.New("export: cancelled")

	// ErrExportFailed wraps any I/O or encoding failure while writing.
	ErrExportFailed = errors.New("export: failed")
)
