package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pdf-csv-extractor/internal/domain"
	"pdf-csv-extractor/internal/service"
	"pdf-csv-extractor/internal/testutil"
)

func TestNewContainerWith_Wiring(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	cfg := &AppConfig{
		UploadPath:        dir,
		MaxFileSize:       1024,
		AllowedExtensions: []string{"pdf"},
		ExtractorBackend:  domain.BackendLedongthuc,
		PageTimeout:       time.Second,
	}

	container, err := NewContainerWith(cfg, testutil.NewMockLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if container.GetConfig() != cfg {
		t.Fatalf("expected container to keep the given config")
	}
	if _, ok := container.Extractor.(*service.LedongthucExtractor); !ok {
		t.Fatalf("expected ledongthuc extractor, got %T", container.Extractor)
	}
	if container.GetConversionService() == nil {
		t.Fatalf("expected conversion service to be wired")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected staging directory %s to be created", dir)
	}
}

func TestNewContainerWith_FitzBackend(t *testing.T) {
	cfg := &AppConfig{
		UploadPath:       t.TempDir(),
		ExtractorBackend: domain.BackendFitz,
		PageTimeout:      time.Second,
	}

	container, err := NewContainerWith(cfg, testutil.NewMockLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := container.Extractor.(*service.FitzExtractor); !ok {
		t.Fatalf("expected fitz extractor, got %T", container.Extractor)
	}
}

func TestNewContainerWith_UnknownBackend(t *testing.T) {
	cfg := &AppConfig{UploadPath: t.TempDir(), ExtractorBackend: "ocr"}

	if _, err := NewContainerWith(cfg, testutil.NewMockLogger()); err == nil {
		t.Fatalf("expected an error for an unknown backend")
	}
}

func TestNewContainerWith_UnusableUploadPath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &AppConfig{UploadPath: filepath.Join(file, "uploads"), ExtractorBackend: domain.BackendLedongthuc}

	if _, err := NewContainerWith(cfg, testutil.NewMockLogger()); err == nil {
		t.Fatalf("expected an error when the staging directory cannot be created")
	}
}
