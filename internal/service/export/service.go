// Package export renders a document's reviewed content for download.
// The saved baseline wins over the raw transform output; the guideline
// profile shapes the HTML rendering (font, spacing).
package export

import (
	"bytes"
	"context"
	"fmt"
	ht "html"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/repositories"
	"guidesync/internal/domain/services"
)

type exportService struct {
	documents services.DocumentService
	store     repositories.ObjectStore
	logger    *slog.Logger

	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
	stripper  *bluemonday.Policy
}

// NewService creates the export service. Rendered artifacts are also kept
// in the object store under exports/ for later retrieval.
func NewService(documents services.DocumentService, store repositories.ObjectStore, logger *slog.Logger) services.ExportService {
	return &exportService{
		documents: documents,
		store:     store,
		logger:    logger.With("component", "export_service"),
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
		stripper:  bluemonday.StrictPolicy(),
	}
}

func (s *exportService) Export(ctx context.Context, userID, documentID string, format services.ExportFormat) (io.ReadCloser, string, string, error) {
	doc, err := s.documents.GetDocument(ctx, userID, documentID)
	if err != nil {
		return nil, "", "", err
	}

	content := doc.ReviewContent()
	if content == "" {
		return nil, "", "", &domain.ValidationError{
			Message: fmt.Sprintf("document %s has no processed content to export", documentID),
		}
	}

	var (
		artifact    []byte
		contentType string
		ext         string
	)
	switch format {
	case services.ExportMarkdown:
		artifact = []byte(content)
		contentType = "text/markdown; charset=utf-8"
		ext = ".md"
	case services.ExportText:
		text, err := s.renderText(content)
		if err != nil {
			return nil, "", "", err
		}
		artifact = text
		contentType = "text/plain; charset=utf-8"
		ext = ".txt"
	case services.ExportHTML:
		page, err := s.renderHTML(doc, content)
		if err != nil {
			return nil, "", "", err
		}
		artifact = page
		contentType = "text/html; charset=utf-8"
		ext = ".html"
	default:
		return nil, "", "", &domain.ValidationError{Message: fmt.Sprintf("unknown export format %q", format)}
	}

	fileName := exportFileName(doc.FileName, ext)

	// Keep a copy for later; the download itself never depends on it.
	key := fmt.Sprintf("exports/%s/%s%s", userID, documentID, ext)
	if err := s.store.Put(ctx, key, bytes.NewReader(artifact), int64(len(artifact)), contentType); err != nil {
		s.logger.Warn("export artifact not cached", "object_key", key, "error", err)
	}

	s.logger.Info("document exported",
		"document_id", documentID,
		"format", string(format),
		"bytes", len(artifact))
	return io.NopCloser(bytes.NewReader(artifact)), contentType, fileName, nil
}

// renderText flattens the markdown to plain text by rendering it and
// stripping every tag.
func (s *exportService) renderText(content string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	text := s.stripper.Sanitize(buf.String())
	return []byte(strings.TrimSpace(ht.UnescapeString(text)) + "\n"), nil
}

func (s *exportService) renderHTML(doc *models.Document, content string) ([]byte, error) {
	var body bytes.Buffer
	if err := s.md.Convert([]byte(content), &body); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	safe := s.sanitizer.Sanitize(body.String())

	font, lineHeight := "Georgia, serif", "1.5"
	if p := doc.GuidelinesApplied; p != nil {
		if p.Font != "" {
			font = p.Font
		}
		if lh := spacingLineHeight(p.Spacing); lh != "" {
			lineHeight = lh
		}
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, `<!DOCTYPE html>
<html lang=%q>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>body { font-family: %s; line-height: %s; max-width: 48rem; margin: 2rem auto; }</style>
</head>
<body>
%s
</body>
</html>
`, htmlLang(doc.Language), ht.EscapeString(doc.FileName), ht.EscapeString(font), lineHeight, safe)
	return page.Bytes(), nil
}

func spacingLineHeight(spacing string) string {
	switch strings.ToLower(spacing) {
	case "single":
		return "1.2"
	case "1.5", "one-and-a-half":
		return "1.5"
	case "double":
		return "2"
	}
	return ""
}

func htmlLang(language string) string {
	if language == "" {
		return "en"
	}
	return language
}

func exportFileName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "document"
	}
	return base + ext
}
