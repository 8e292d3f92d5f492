// Package openai provides a TransformProvider backed by the OpenAI chat
// completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
)

const systemPrompt = `You are an academic document formatter. Rewrite the given paper so it conforms to the journal formatting guidelines provided. Preserve the scientific content exactly; change only structure, citations, and presentation.

Return ONLY a valid JSON object, no other text:
{
  "processed_content": "<the full reformatted paper as markdown>",
  "suggestions": ["<one human-readable sentence per change made>"]
}`

// Provider implements the TransformProvider interface using OpenAI.
type Provider struct {
	client *goopenai.Client
	model  string
}

// NewProvider creates a new OpenAI transform provider.
func NewProvider(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Provider{
		client: goopenai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Name returns the provider name used for registry routing.
func (p *Provider) Name() string {
	return "openai"
}

// wireResult is the JSON shape the model is instructed to return.
type wireResult struct {
	ProcessedContent string   `json:"processed_content"`
	Suggestions      []string `json:"suggestions"`
}

// Transform rewrites the source content through a chat completion.
// Progress is coarse: the API is a single blocking call, so the provider
// reports the stages around it and leaves fine-grained interpolation to
// the workflow's progress tracker.
func (p *Provider) Transform(ctx context.Context, req *services.TransformRequest, progress services.ProgressFunc) (*models.TransformResult, error) {
	prompt := buildPrompt(req)
	report(progress, 10)

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: p.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &domain.TransformError{Message: "transform timed out"}
		}
		return nil, &domain.TransformError{Message: fmt.Sprintf("transform request failed: %v", err)}
	}
	report(progress, 80)

	if len(resp.Choices) == 0 {
		return nil, &domain.TransformError{Message: "transform service returned no choices"}
	}

	var wire wireResult
	raw := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		// Some models answer with the rewritten text directly despite the
		// JSON instruction; accept it with no suggestions rather than fail.
		wire = wireResult{ProcessedContent: raw}
	}

	report(progress, 95)

	return &models.TransformResult{
		ProcessedContent:  wire.ProcessedContent,
		Suggestions:       wire.Suggestions,
		GuidelinesApplied: req.Profile,
	}, nil
}

func buildPrompt(req *services.TransformRequest) string {
	var b strings.Builder
	b.WriteString("Journal formatting guidelines:\n")
	fmt.Fprintf(&b, "- Citation style: %s\n", req.Profile.CitationStyle)
	fmt.Fprintf(&b, "- Font: %s\n", req.Profile.Font)
	fmt.Fprintf(&b, "- Spacing: %s\n", req.Profile.Spacing)
	if req.Profile.MaxWords > 0 {
		fmt.Fprintf(&b, "- Maximum length: %d words\n", req.Profile.MaxWords)
	}
	for _, rule := range req.Profile.Rules {
		fmt.Fprintf(&b, "- %s\n", rule)
	}
	if req.Language != "" {
		fmt.Fprintf(&b, "\nDocument language: %s\n", req.Language)
	}
	b.WriteString("\nPaper to reformat:\n\n")
	b.WriteString(req.SourceContent)
	return b.String()
}

func report(progress services.ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}
