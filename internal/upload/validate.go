// Package upload performs local validation of uploaded source files.
// Everything here runs before any storage or network call: a bad file
// type or an oversized upload fails immediately with a validation error
// and never costs a server round-trip downstream.
package upload

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"guidesync/internal/config"
	"guidesync/internal/domain"
)

// Accepted MIME types for uploaded papers.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var acceptedMimeTypes = map[string]bool{
	MimePDF:  true,
	MimeDOC:  true,
	MimeDOCX: true,
}

var extensionMimeTypes = map[string]string{
	".pdf":  MimePDF,
	".doc":  MimeDOC,
	".docx": MimeDOCX,
}

// MimeTypeForFile infers the MIME type from the file extension when the
// client did not send one.
func MimeTypeForFile(fileName string) string {
	return extensionMimeTypes[strings.ToLower(filepath.Ext(fileName))]
}

// ValidateMeta checks file name, MIME type, and size against the accepted
// set. Returns a domain.ValidationError on any mismatch.
func ValidateMeta(fileName, mimeType string, size int64) error {
	if strings.TrimSpace(fileName) == "" {
		return &domain.ValidationError{Message: "file name is required"}
	}
	if !acceptedMimeTypes[mimeType] {
		return &domain.ValidationError{
			Message: fmt.Sprintf("unsupported file type %q: accepted types are PDF, DOC, DOCX", mimeType),
		}
	}
	if size <= 0 {
		return &domain.ValidationError{Message: "file is empty"}
	}
	if size > config.MaxUploadBytes {
		return &domain.ValidationError{
			Message: fmt.Sprintf("file exceeds the %dMB size limit", config.MaxUploadBytes>>20),
		}
	}
	return nil
}

// PDFInfo holds the structural metadata pulled from a validated PDF.
type PDFInfo struct {
	PageCount int
}

// InspectPDF validates PDF structure and returns page metadata. Corrupt or
// encrypted files surface as validation errors before they reach storage.
func InspectPDF(rs io.ReadSeeker) (*PDFInfo, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("invalid PDF: %v", err)}
	}

	return &PDFInfo{PageCount: ctx.PageCount}, nil
}
