package converter

import (
	"errors"
	"fmt"
)

// ErrInputNotFound indicates the input path does not name an existing file.
var ErrInputNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates no reader handles the input's extension.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// ErrDependencyMissing indicates the spreadsheet reader failed its startup probe.
var ErrDependencyMissing = errors.New("spreadsheet support unavailable")

// ErrSheetNotFound indicates the requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// MalformedWorkbookError wraps a failure to open or read a file that exists
// but could not be parsed as a spreadsheet.
type MalformedWorkbookError struct {
	Path string
	Err  error
}

func (e *MalformedWorkbookError) Error() string {
	return fmt.Sprintf("cannot read spreadsheet %s: %v", e.Path, e.Err)
}

func (e *MalformedWorkbookError) Unwrap() error {
	return e.Err
}
