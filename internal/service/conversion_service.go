package service

import (
	"context"
	"fmt"
	"time"

	"pdf-csv-extractor/internal/domain"
)

// ConversionService turns uploaded PDFs into single-row CSV documents
type ConversionService struct {
	extractor         domain.TextExtractor
	staging           domain.StagingArea
	allowedExtensions []string
	logger            domain.Logger
}

// NewConversionService creates a new conversion service instance
func NewConversionService(
	extractor domain.TextExtractor,
	staging domain.StagingArea,
	allowedExtensions []string,
	logger domain.Logger,
) *ConversionService {
	return &ConversionService{
		extractor:         extractor,
		staging:           staging,
		allowedExtensions: allowedExtensions,
		logger:            logger,
	}
}

// Convert validates the upload, stages it, extracts its text and renders the
// CSV. The staging file is removed before Convert returns, whatever the outcome.
func (s *ConversionService) Convert(ctx context.Context, file *domain.UploadedFile) (*domain.ConversionOutput, error) {
	if file == nil || file.Content == nil {
		return nil, domain.ErrNoFile
	}
	if err := ValidateFilename(file.Filename, s.allowedExtensions); err != nil {
		return nil, err
	}

	start := time.Now()
	safeName := SecureFilename(file.Filename)
	base := BaseName(safeName)

	path, release, err := s.staging.Stage(safeName, file.Content)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer release()

	text, stats, err := ExtractText(ctx, s.extractor, path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	result := domain.ExtractionResult{
		Filename:  base,
		Text:      text,
		PageCount: stats.Pages,
		TextPages: stats.TextPages,
	}

	data, err := EncodeCSV(result)
	if err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	s.logger.Info("Converted PDF",
		"file", safeName,
		"size", file.Size,
		"pages", stats.Pages,
		"text_pages", stats.TextPages,
		"chars", len(text),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &domain.ConversionOutput{
		AttachmentName: AttachmentName(base),
		ContentType:    CSVContentType,
		Data:           data,
		Result:         result,
	}, nil
}
