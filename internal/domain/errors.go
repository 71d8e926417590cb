package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrNoFilename      = errors.New("no file selected")
	ErrUnsupportedType = errors.New("file type not allowed")
	ErrNotPDF          = errors.New("not a PDF document")
	ErrFileTooLarge    = errors.New("file too large")
)

// ExtractionError reports a failure inside a PDF backend together with the
// page it happened on. Page is zero when the document could not be opened.
type ExtractionError struct {
	Backend string
	Page    int
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: page %d: %v", e.Backend, e.Page, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Backend, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
