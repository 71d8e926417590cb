package service

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"pdf-csv-extractor/internal/domain"
)

// LedongthucExtractor reads page text with the pure Go ledongthuc/pdf parser
type LedongthucExtractor struct {
	logger domain.Logger
}

// NewLedongthucExtractor creates a new pure Go extractor
func NewLedongthucExtractor(logger domain.Logger) *LedongthucExtractor {
	return &LedongthucExtractor{logger: logger}
}

// ExtractPages implements domain.TextExtractor
func (e *LedongthucExtractor) ExtractPages(
	ctx context.Context,
	path string,
	onPage func(pageNumber int, text string) error,
) (err error) {
	if err := checkPDFSignature(path); err != nil {
		return &domain.ExtractionError{Backend: domain.BackendLedongthuc, Err: err}
	}

	pageNum := 0
	// The parser panics on some malformed documents instead of returning errors.
	defer func() {
		if r := recover(); r != nil {
			err = &domain.ExtractionError{
				Backend: domain.BackendLedongthuc,
				Page:    pageNum,
				Err:     fmt.Errorf("malformed PDF: %v", r),
			}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return &domain.ExtractionError{Backend: domain.BackendLedongthuc, Err: err}
	}
	defer f.Close()

	numPages := reader.NumPage()
	for pageNum = 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.logger.Debug("PDF processing page", "page", pageNum, "total", numPages)

		page := reader.Page(pageNum)
		text := ""
		if !page.V.IsNull() {
			raw, err := page.GetPlainText(nil)
			if err != nil {
				return &domain.ExtractionError{Backend: domain.BackendLedongthuc, Page: pageNum, Err: err}
			}
			text = normalizePageText(raw)
		}

		if err := onPage(pageNum, text); err != nil {
			return err
		}
	}

	return nil
}
