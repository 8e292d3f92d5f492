package transform

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
)

// RawResult is the loosely-shaped provider output before boundary shaping.
type RawResult struct {
	ProcessedContent string
	Suggestions      []string
}

var (
	sanitizePolicy = bluemonday.UGCPolicy()
	htmlTagPattern = regexp.MustCompile(`(?i)<\s*(p|div|h[1-6]|span|br|ul|ol|li|table|b|i|em|strong)[\s>/]`)
)

// ShapeResult validates and normalizes provider output once, at the
// boundary. AI services sometimes answer in HTML even when asked for
// markdown; such content is sanitized and converted before it ever
// reaches the review core. Suggestions are trimmed and empties dropped.
func ShapeResult(raw *RawResult, profile models.GuidelineProfile) (*models.TransformResult, error) {
	content := strings.TrimSpace(raw.ProcessedContent)
	if content == "" {
		return nil, &domain.TransformError{Message: "transform service returned empty content"}
	}

	if looksLikeHTML(content) {
		safe := sanitizePolicy.Sanitize(content)
		md, err := htmltomarkdown.ConvertString(safe)
		if err != nil {
			return nil, &domain.TransformError{Message: fmt.Sprintf("convert transform output: %v", err)}
		}
		content = strings.TrimSpace(md)
	}

	var suggestions []string
	for _, s := range raw.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			suggestions = append(suggestions, s)
		}
	}

	return &models.TransformResult{
		ProcessedContent:  content,
		Suggestions:       suggestions,
		GuidelinesApplied: profile,
	}, nil
}

// looksLikeHTML reports whether content contains block-level markup rather
// than the occasional literal angle bracket.
func looksLikeHTML(content string) bool {
	return htmlTagPattern.MatchString(content)
}
