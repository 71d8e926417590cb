package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-csv-extractor/internal/domain"
	"pdf-csv-extractor/internal/testutil"
)

// stubExtractor replays fixed page texts
type stubExtractor struct {
	pages []string
	err   error
	calls int
}

func (s *stubExtractor) ExtractPages(ctx context.Context, path string, onPage func(int, string) error) error {
	s.calls++
	for i, text := range s.pages {
		if err := onPage(i+1, text); err != nil {
			return err
		}
	}
	return s.err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestExtractText_JoinsNonEmptyPages(t *testing.T) {
	ex := &stubExtractor{pages: []string{"First", "", "Second\nparagraph", "", "Last  \n\t"}}

	text, stats, err := ExtractText(context.Background(), ex, "ignored.pdf")

	require.NoError(t, err)
	assert.Equal(t, "First\nSecond\nparagraph\nLast", text)
	assert.Equal(t, PageStats{Pages: 5, TextPages: 3}, stats)
}

func TestExtractText_KeepsPageIndentation(t *testing.T) {
	ex := &stubExtractor{pages: []string{"first", "", "    indented second", " "}}

	text, stats, err := ExtractText(context.Background(), ex, "ignored.pdf")

	require.NoError(t, err)
	assert.Equal(t, "first\n    indented second", text)
	assert.Equal(t, PageStats{Pages: 4, TextPages: 3}, stats)
}

func TestExtractText_NoTextPages(t *testing.T) {
	ex := &stubExtractor{pages: []string{"", ""}}

	text, stats, err := ExtractText(context.Background(), ex, "scan.pdf")

	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, 2, stats.Pages)
	assert.Zero(t, stats.TextPages)
}

func TestExtractText_PropagatesBackendError(t *testing.T) {
	boom := errors.New("boom")
	ex := &stubExtractor{pages: []string{"partial"}, err: boom}

	text, _, err := ExtractText(context.Background(), ex, "broken.pdf")

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, text, "no partial text on failure")
}

func TestNewTextExtractor(t *testing.T) {
	logger := testutil.NewMockLogger()

	ex, err := NewTextExtractor("", time.Second, logger)
	require.NoError(t, err)
	assert.IsType(t, &LedongthucExtractor{}, ex)

	ex, err = NewTextExtractor("LEDONGTHUC", time.Second, logger)
	require.NoError(t, err)
	assert.IsType(t, &LedongthucExtractor{}, ex)

	ex, err = NewTextExtractor(domain.BackendFitz, time.Second, logger)
	require.NoError(t, err)
	assert.IsType(t, &FitzExtractor{}, ex)

	_, err = NewTextExtractor("pdftotext", time.Second, logger)
	assert.Error(t, err)
}

func TestCheckPDFSignature(t *testing.T) {
	require.NoError(t, checkPDFSignature(writeFile(t, "ok.pdf", testutil.BuildPDF("x"))))
	require.NoError(t, checkPDFSignature(writeFile(t, "junk-prefix.pdf", append([]byte("\x00\x01junk"), testutil.BuildPDF("x")...))))

	assert.ErrorIs(t, checkPDFSignature(writeFile(t, "text.pdf", []byte("just some text"))), domain.ErrNotPDF)
	assert.ErrorIs(t, checkPDFSignature(writeFile(t, "empty.pdf", nil)), domain.ErrNotPDF)
	assert.Error(t, checkPDFSignature(filepath.Join(t.TempDir(), "missing.pdf")))
}

func TestLedongthucExtractor_SinglePage(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "hello.pdf", testutil.BuildPDF("Hello World"))

	text, stats, err := ExtractText(context.Background(), ex, path)

	require.NoError(t, err)
	assert.Equal(t, "Hello World", text)
	assert.Equal(t, PageStats{Pages: 1, TextPages: 1}, stats)
}

func TestLedongthucExtractor_SkipsEmptyPages(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "multi.pdf", testutil.BuildPDF("First page", "", "Third page", ""))

	var seen []int
	err := ex.ExtractPages(context.Background(), path, func(n int, text string) error {
		seen = append(seen, n)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, seen, "pages are delivered in order")

	text, stats, err := ExtractText(context.Background(), ex, path)
	require.NoError(t, err)
	assert.Equal(t, "First page\nThird page", text)
	assert.Equal(t, PageStats{Pages: 4, TextPages: 2}, stats)
}

func TestLedongthucExtractor_KeepsPageIndentation(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "indented.pdf", testutil.BuildPDF("first", "    indented second", " "))

	text, stats, err := ExtractText(context.Background(), ex, path)

	require.NoError(t, err)
	assert.Equal(t, "first\n    indented second", text)
	assert.Equal(t, 3, stats.Pages)
}

func TestLedongthucExtractor_RejectsNonPDF(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "fake.pdf", []byte("this is not a pdf"))

	err := ex.ExtractPages(context.Background(), path, func(int, string) error { return nil })

	assert.ErrorIs(t, err, domain.ErrNotPDF)
	var exErr *domain.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, domain.BackendLedongthuc, exErr.Backend)
}

func TestLedongthucExtractor_MalformedDocument(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "broken.pdf", []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog\ntruncated"))

	err := ex.ExtractPages(context.Background(), path, func(int, string) error { return nil })

	var exErr *domain.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, domain.BackendLedongthuc, exErr.Backend)
}

func TestLedongthucExtractor_StopsOnCallbackError(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "three.pdf", testutil.BuildPDF("one", "two", "three"))
	stop := errors.New("stop")

	calls := 0
	err := ex.ExtractPages(context.Background(), path, func(int, string) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestLedongthucExtractor_CanceledContext(t *testing.T) {
	ex := NewLedongthucExtractor(testutil.NewMockLogger())
	path := writeFile(t, "cancel.pdf", testutil.BuildPDF("one", "two"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ex.ExtractPages(ctx, path, func(int, string) error {
		t.Fatalf("no page should be delivered after cancellation")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitzExtractor_RejectsNonPDF(t *testing.T) {
	ex := NewFitzExtractor(time.Second, testutil.NewMockLogger())
	path := writeFile(t, "fake.pdf", []byte("plain text"))

	err := ex.ExtractPages(context.Background(), path, func(int, string) error { return nil })

	assert.ErrorIs(t, err, domain.ErrNotPDF)
	var exErr *domain.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, domain.BackendFitz, exErr.Backend)
}

func TestFitzExtractor_MultiPage(t *testing.T) {
	ex := NewFitzExtractor(30*time.Second, testutil.NewMockLogger())
	path := writeFile(t, "multi.pdf", testutil.BuildPDF("Hello World", "", "Goodbye"))

	var pages []string
	err := ex.ExtractPages(context.Background(), path, func(n int, text string) error {
		if text != "" {
			pages = append(pages, text)
		}
		return nil
	})
	require.NoError(t, err)

	text, stats, err := ExtractText(context.Background(), ex, path)

	require.NoError(t, err)
	assert.Equal(t, strings.TrimRightFunc(strings.Join(pages, "\n"), unicode.IsSpace), text)
	assert.Contains(t, text, "Hello World")
	assert.Contains(t, text, "Goodbye")
	assert.Less(t, strings.Index(text, "Hello World"), strings.Index(text, "Goodbye"))
	assert.Equal(t, 3, stats.Pages)
}

func TestNormalizePageText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello World", "Hello World"},
		{"keeps surrounding whitespace", "\n  Hello\n\t", "\n  Hello\n\t"},
		{"keeps whitespace only", " \n\t\r ", " \n\t\r "},
		{"control only", "\x00\x01", ""},
		{"keeps inner layout", "a\tb\r\nc", "a\tb\r\nc"},
		{"drops controls", "a\x00b\x07c\x1bd\x7fe", "abcde"},
		{"drops invalid utf8", "caf\xe9 ok", "caf ok"},
		{"keeps unicode", "naïve été \U0001F600", "naïve été \U0001F600"},
		{"keeps literal replacement char", "x�y", "x�y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizePageText(tt.in))
		})
	}
}
