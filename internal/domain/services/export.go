package services

import (
	"context"
	"io"
)

// ExportFormat selects the download rendering.
type ExportFormat string

const (
	ExportHTML     ExportFormat = "html"
	ExportMarkdown ExportFormat = "markdown"
	ExportText     ExportFormat = "text"
)

// ExportService renders a document's saved (or processed) content per its
// guideline profile and streams it back for download.
type ExportService interface {
	// Export returns the artifact stream, its content type, and a
	// suggested file name. The caller must close the reader.
	Export(ctx context.Context, userID, documentID string, format ExportFormat) (io.ReadCloser, string, string, error)
}
