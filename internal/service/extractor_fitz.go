package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/go-fitz"

	"pdf-csv-extractor/internal/domain"
)

// FitzExtractor reads page text through MuPDF
type FitzExtractor struct {
	pageTimeout time.Duration
	logger      domain.Logger
}

// NewFitzExtractor creates a MuPDF backed extractor. Each page must finish
// within pageTimeout.
func NewFitzExtractor(pageTimeout time.Duration, logger domain.Logger) *FitzExtractor {
	return &FitzExtractor{
		pageTimeout: pageTimeout,
		logger:      logger,
	}
}

type pageResult struct {
	text string
	err  error
}

// ExtractPages implements domain.TextExtractor
func (e *FitzExtractor) ExtractPages(
	ctx context.Context,
	path string,
	onPage func(pageNumber int, text string) error,
) error {
	if err := checkPDFSignature(path); err != nil {
		return &domain.ExtractionError{Backend: domain.BackendFitz, Err: err}
	}

	doc, err := fitz.New(path)
	if err != nil {
		return &domain.ExtractionError{Backend: domain.BackendFitz, Err: err}
	}

	// A page that times out keeps running in MuPDF; the document is closed
	// once that goroutine returns instead of underneath it.
	var pending chan pageResult
	defer func() {
		if pending == nil {
			_ = doc.Close()
			return
		}
		go func(ch chan pageResult) {
			<-ch
			_ = doc.Close()
		}(pending)
	}()

	numPages := doc.NumPage()
	for pageNum := 0; pageNum < numPages; pageNum++ {
		e.logger.Debug("PDF processing page", "page", pageNum+1, "total", numPages)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, err := doc.Text(idx)
			resultCh <- pageResult{text: t, err: err}
		}(pageNum)

		timer := time.NewTimer(e.pageTimeout)
		var res pageResult
		select {
		case res = <-resultCh:
			timer.Stop()
		case <-timer.C:
			pending = resultCh
			e.logger.Warn("PDF page extraction timeout", "page", pageNum+1, "total", numPages, "timeout_sec", int(e.pageTimeout.Seconds()))
			return &domain.ExtractionError{
				Backend: domain.BackendFitz,
				Page:    pageNum + 1,
				Err:     fmt.Errorf("timeout after %v", e.pageTimeout),
			}
		case <-ctx.Done():
			timer.Stop()
			pending = resultCh
			return ctx.Err()
		}

		if res.err != nil {
			return &domain.ExtractionError{Backend: domain.BackendFitz, Page: pageNum + 1, Err: res.err}
		}
		if err := onPage(pageNum+1, normalizePageText(res.text)); err != nil {
			return err
		}
	}

	return nil
}
