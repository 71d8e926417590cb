package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"pdf-csv-extractor/internal/domain"
	apperrors "pdf-csv-extractor/pkg/errors"
)

// Client facing messages
const (
	msgNoFile          = "No file uploaded"
	msgNoFilename      = "No file selected"
	msgUnsupportedType = "Only PDF files are allowed"
	msgTooLarge        = "File too large"
	msgProcessing      = "Failed to process PDF"
)

// UploadHandler converts uploaded PDFs into CSV downloads
type UploadHandler struct {
	converter          domain.Converter
	maxFileSize        int64
	exposeErrorDetails bool
	logger             domain.Logger
}

// NewUploadHandler creates a new upload handler instance
func NewUploadHandler(converter domain.Converter, maxFileSize int64, exposeErrorDetails bool, logger domain.Logger) *UploadHandler {
	return &UploadHandler{
		converter:          converter,
		maxFileSize:        maxFileSize,
		exposeErrorDetails: exposeErrorDetails,
		logger:             logger,
	}
}

// Upload handles POST /upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, r, domain.ErrFileTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	file, header, err := h.readUpload(r)
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	defer file.Close()

	out, err := h.converter.Convert(r.Context(), &domain.UploadedFile{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": out.AttachmentName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Data); err != nil {
		h.logger.Warn("Failed to write CSV response", "file", out.AttachmentName, "error", err)
	}
}

// readUpload parses the multipart body and returns the "file" part.
// Browsers submit an empty filename when no file was chosen; such a part is
// stored as a plain form value rather than a file.
func (h *UploadHandler) readUpload(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, nil, domain.ErrFileTooLarge
		}
		h.logger.Debug("Request is not a readable multipart form", "error", err)
		return nil, nil, domain.ErrNoFile
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if _, ok := r.MultipartForm.Value["file"]; ok {
			return nil, nil, domain.ErrNoFilename
		}
		return nil, nil, domain.ErrNoFile
	}
	return file, header, nil
}

func (h *UploadHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := h.classify(err)

	if appErr.StatusCode >= http.StatusInternalServerError {
		h.logger.Error("PDF conversion failed", err, "path", r.URL.Path)
	} else {
		h.logger.Debug("Rejected upload", "status", appErr.StatusCode, "reason", appErr.Message)
	}

	message := appErr.Message
	if appErr.Type == apperrors.ErrorTypeInternal && h.exposeErrorDetails {
		message = err.Error()
	}
	writeError(w, appErr.StatusCode, message)
}

func (h *UploadHandler) classify(err error) *apperrors.AppError {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return apperrors.NewValidationError(msgNoFile, err)
	case errors.Is(err, domain.ErrNoFilename):
		return apperrors.NewValidationError(msgNoFilename, err)
	case errors.Is(err, domain.ErrUnsupportedType):
		return apperrors.NewValidationError(msgUnsupportedType, err)
	case errors.Is(err, domain.ErrFileTooLarge):
		return apperrors.NewTooLargeError(msgTooLarge, err)
	default:
		return apperrors.NewInternalError(msgProcessing, err)
	}
}
