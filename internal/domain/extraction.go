package domain

import "io"

// CSV column names, in output order
const (
	ColumnFilename      = "filename"
	ColumnExtractedText = "extracted_text"
)

// Text extraction backends
const (
	BackendLedongthuc = "ledongthuc"
	BackendFitz       = "fitz"
)

// UploadedFile is a PDF received from a client, valid for one request
type UploadedFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ExtractionResult pairs a file's base name with the text found in it
type ExtractionResult struct {
	Filename  string
	Text      string
	PageCount int
	TextPages int
}

// ConversionOutput is the CSV attachment produced for one upload
type ConversionOutput struct {
	AttachmentName string
	ContentType    string
	Data           []byte
	Result         ExtractionResult
}
