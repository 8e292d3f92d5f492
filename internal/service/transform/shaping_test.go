package transform

import (
	"errors"
	"strings"
	"testing"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
)

func testProfile() models.GuidelineProfile {
	return models.GuidelineProfile{
		CitationStyle: "APA",
		Font:          "Times New Roman",
		Spacing:       "double",
	}
}

func TestShapeResultPassesMarkdownThrough(t *testing.T) {
	raw := &RawResult{
		ProcessedContent: "# Title\n\nSome *markdown* with a < b inequality.",
		Suggestions:      []string{"Reworked title"},
	}

	result, err := ShapeResult(raw, testProfile())
	if err != nil {
		t.Fatalf("ShapeResult failed: %v", err)
	}
	if result.ProcessedContent != raw.ProcessedContent {
		t.Errorf("markdown content should pass through unchanged, got %q", result.ProcessedContent)
	}
	if result.GuidelinesApplied.CitationStyle != "APA" {
		t.Errorf("profile not carried into result")
	}
}

func TestShapeResultConvertsHTML(t *testing.T) {
	raw := &RawResult{
		ProcessedContent: "<h1>Title</h1><p>A paragraph with <strong>bold</strong> text.</p>",
	}

	result, err := ShapeResult(raw, testProfile())
	if err != nil {
		t.Fatalf("ShapeResult failed: %v", err)
	}
	if strings.Contains(result.ProcessedContent, "<p>") {
		t.Errorf("HTML should be converted to markdown, got %q", result.ProcessedContent)
	}
	if !strings.Contains(result.ProcessedContent, "Title") {
		t.Errorf("content lost in conversion: %q", result.ProcessedContent)
	}
	if !strings.Contains(result.ProcessedContent, "**bold**") {
		t.Errorf("bold text not converted: %q", result.ProcessedContent)
	}
}

func TestShapeResultStripsScriptTags(t *testing.T) {
	raw := &RawResult{
		ProcessedContent: "<p>Safe text</p><script>alert('x')</script>",
	}

	result, err := ShapeResult(raw, testProfile())
	if err != nil {
		t.Fatalf("ShapeResult failed: %v", err)
	}
	if strings.Contains(result.ProcessedContent, "script") || strings.Contains(result.ProcessedContent, "alert") {
		t.Errorf("script content must be sanitized away, got %q", result.ProcessedContent)
	}
}

func TestShapeResultRejectsEmptyContent(t *testing.T) {
	_, err := ShapeResult(&RawResult{ProcessedContent: "   "}, testProfile())
	if !errors.Is(err, domain.ErrTransform) {
		t.Errorf("error = %v, want ErrTransform", err)
	}
}

func TestShapeResultDropsBlankSuggestions(t *testing.T) {
	raw := &RawResult{
		ProcessedContent: "content",
		Suggestions:      []string{" Fixed citations ", "", "  ", "Shortened abstract"},
	}

	result, err := ShapeResult(raw, testProfile())
	if err != nil {
		t.Fatalf("ShapeResult failed: %v", err)
	}
	want := []string{"Fixed citations", "Shortened abstract"}
	if len(result.Suggestions) != len(want) {
		t.Fatalf("suggestions = %v, want %v", result.Suggestions, want)
	}
	for i := range want {
		if result.Suggestions[i] != want[i] {
			t.Errorf("suggestion[%d] = %q, want %q", i, result.Suggestions[i], want[i])
		}
	}
}
