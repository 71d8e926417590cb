package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"pdf-csv-extractor/internal/domain"
)

// pdfHeaderWindow is how far into a file the %PDF- marker may appear.
const pdfHeaderWindow = 1024

var pdfMagic = []byte("%PDF-")

// PageStats counts the pages an extraction visited.
type PageStats struct {
	Pages     int
	TextPages int
}

// NewTextExtractor returns the extraction backend registered under name.
func NewTextExtractor(name string, pageTimeout time.Duration, logger domain.Logger) (domain.TextExtractor, error) {
	switch strings.ToLower(name) {
	case "", domain.BackendLedongthuc:
		return NewLedongthucExtractor(logger), nil
	case domain.BackendFitz:
		return NewFitzExtractor(pageTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", name)
	}
}

// ExtractText joins the page texts of the PDF at path with newlines, in page
// order, and trims trailing whitespace from the result. Only pages with no text
// at all are skipped; leading whitespace of a page is kept.
func ExtractText(ctx context.Context, extractor domain.TextExtractor, path string) (string, PageStats, error) {
	var (
		b     strings.Builder
		stats PageStats
	)

	err := extractor.ExtractPages(ctx, path, func(pageNumber int, text string) error {
		stats.Pages++
		if text == "" {
			return nil
		}
		stats.TextPages++
		b.WriteString(text)
		b.WriteByte('\n')
		return nil
	})
	if err != nil {
		return "", stats, err
	}

	return strings.TrimRightFunc(b.String(), unicode.IsSpace), stats, nil
}

// checkPDFSignature reports domain.ErrNotPDF when the file lacks a PDF header.
func checkPDFSignature(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, pdfHeaderWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return err
	}
	if !bytes.Contains(head[:n], pdfMagic) {
		return domain.ErrNotPDF
	}
	return nil
}

// normalizePageText drops NUL, other control characters except tab, newline
// and carriage return, and bytes that are not valid UTF-8. Whitespace is left
// as the backend produced it.
func normalizePageText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
		case r == utf8.RuneError && isInvalidByte(text[i:]):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isInvalidByte reports whether s starts with a byte that does not begin a
// valid UTF-8 sequence.
func isInvalidByte(s string) bool {
	_, size := utf8.DecodeRuneInString(s)
	return size == 1
}
