package service

import (
	"bytes"
	"encoding/csv"
	"io"

	"pdf-csv-extractor/internal/domain"
)

// CSVContentType is the media type of converted documents
const CSVContentType = "text/csv; charset=utf-8"

// WriteCSV writes the header row followed by one row per result.
// Lines end in \n and fields are quoted only when they need it.
func WriteCSV(w io.Writer, results ...domain.ExtractionResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{domain.ColumnFilename, domain.ColumnExtractedText}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Filename, r.Text}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeCSV renders a single result as an in-memory CSV document
func EncodeCSV(result domain.ExtractionResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
