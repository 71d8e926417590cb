package domain

import (
	"context"
	"io"
	"time"
)

// TextExtractor reads a PDF page by page. Pages are delivered once, in order,
// and a page may have empty text. Returning an error from onPage stops the
// iteration and that error is returned.
type TextExtractor interface {
	ExtractPages(ctx context.Context, path string, onPage func(pageNumber int, text string) error) error
}

// StagingArea holds uploads on disk while they are being extracted
type StagingArea interface {
	// Stage copies r into a new file derived from name and returns its path.
	// release removes the file and is safe to call more than once.
	Stage(name string, r io.Reader) (path string, release func(), err error)
}

// Converter turns one uploaded PDF into a CSV document
type Converter interface {
	Convert(ctx context.Context, file *UploadedFile) (*ConversionOutput, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetAllowedExtensions() []string
	GetLogLevel() string
	GetExtractorBackend() string
	GetPageTimeout() time.Duration
	GetExposeErrorDetails() bool
	GetShutdownTimeout() time.Duration
}
