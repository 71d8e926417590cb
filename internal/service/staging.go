package service

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"pdf-csv-extractor/internal/domain"
)

// DiskStaging keeps uploads in a directory for the duration of one conversion.
// Every staged file gets a fresh uuid prefix, so concurrent uploads that share
// a name never touch the same file.
type DiskStaging struct {
	dir    string
	logger domain.Logger
}

// NewDiskStaging creates dir if needed and returns a staging area rooted there
func NewDiskStaging(dir string, logger domain.Logger) (*DiskStaging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating staging dir %s: %w", dir, err)
	}
	return &DiskStaging{dir: dir, logger: logger}, nil
}

// Dir returns the staging directory
func (s *DiskStaging) Dir() string {
	return s.dir
}

// Stage implements domain.StagingArea
func (s *DiskStaging) Stage(name string, r io.Reader) (string, func(), error) {
	safe := SecureFilename(name)
	if safe == "" {
		safe = "upload.pdf"
	}
	path := filepath.Join(s.dir, uuid.NewString()+"-"+safe)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("creating staging file: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("Failed to remove staging file", "path", path, "error", err)
			}
		})
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		release()
		return "", nil, fmt.Errorf("writing staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("closing staging file: %w", err)
	}

	s.logger.Debug("Staged upload", "path", path)
	return path, release, nil
}
