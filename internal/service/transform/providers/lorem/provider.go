// Package lorem provides a deterministic local transform provider for dev
// and test environments: no API key, no network, stable output for the
// same input.
package lorem

import (
	"context"
	"fmt"
	"strings"

	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
)

// Provider implements TransformProvider with a local rewrite.
type Provider struct{}

// NewProvider creates a new lorem provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name used for registry routing.
func (p *Provider) Name() string {
	return "lorem"
}

// Transform normalizes whitespace, ensures paragraph breaks, and prefixes
// a formatted header block derived from the profile. Progress is reported
// in fixed steps so the workflow's monotonic tracker has something to chew
// on in dev.
func (p *Provider) Transform(ctx context.Context, req *services.TransformRequest, progress services.ProgressFunc) (*models.TransformResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	steps := []int{10, 30, 60, 90}
	for _, s := range steps {
		if progress != nil {
			progress(s)
		}
	}

	paragraphs := splitParagraphs(req.SourceContent)

	var b strings.Builder
	fmt.Fprintf(&b, "*Formatted for %s citation style, %s, %s spacing.*\n\n",
		req.Profile.CitationStyle, req.Profile.Font, req.Profile.Spacing)
	for i, para := range paragraphs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(para)
	}

	suggestions := []string{
		fmt.Sprintf("Applied %s citation style", req.Profile.CitationStyle),
		fmt.Sprintf("Set body font to %s with %s spacing", req.Profile.Font, req.Profile.Spacing),
		fmt.Sprintf("Normalized %d paragraphs", len(paragraphs)),
	}
	for _, rule := range req.Profile.Rules {
		suggestions = append(suggestions, "Checked rule: "+rule)
	}

	return &models.TransformResult{
		ProcessedContent:  b.String(),
		Suggestions:       suggestions,
		GuidelinesApplied: req.Profile,
	}, nil
}

func splitParagraphs(content string) []string {
	var out []string
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		// Collapse intra-paragraph line breaks.
		out = append(out, strings.Join(strings.Fields(block), " "))
	}
	if len(out) == 0 {
		out = []string{strings.TrimSpace(content)}
	}
	return out
}
