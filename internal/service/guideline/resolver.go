package guideline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"guidesync/internal/domain"
	"guidesync/internal/domain/models"
	"guidesync/internal/domain/services"
)

// HTTPResolver calls the external guideline-research service. The service
// is a black box: a journal name or URL goes in, a structured profile
// comes out. Its response body is parsed and validated exactly once here;
// downstream code only ever sees the strict models.GuidelineProfile.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPResolver creates a resolver client against the given base URL.
func NewHTTPResolver(baseURL string, logger *slog.Logger) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

var _ services.GuidelineResolver = (*HTTPResolver)(nil)

// resolverResponse is the loosely-shaped wire format of the external
// service. It never leaves this file.
type resolverResponse struct {
	CitationStyle string   `json:"citation_style"`
	Font          string   `json:"font"`
	Spacing       string   `json:"spacing"`
	MaxWords      int      `json:"max_words"`
	Rules         []string `json:"rules"`
	Source        string   `json:"source"`
	Confidence    float64  `json:"confidence"`
}

// ResolveGuidelines asks the external service for the journal's profile.
func (r *HTTPResolver) ResolveGuidelines(ctx context.Context, journalNameOrURL string) (*models.GuidelineProfile, error) {
	payload, err := json.Marshal(map[string]string{"journal": journalNameOrURL})
	if err != nil {
		return nil, fmt.Errorf("marshal resolver request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/resolve", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build resolver request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &domain.ResolutionError{Message: fmt.Sprintf("guideline resolver unreachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.logger.Warn("resolver returned error",
			"status", resp.StatusCode,
			"journal", journalNameOrURL,
			"body", string(body),
		)
		return nil, &domain.ResolutionError{
			Message: fmt.Sprintf("guideline resolver returned status %d", resp.StatusCode),
		}
	}

	var wire resolverResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&wire); err != nil {
		return nil, &domain.ResolutionError{Message: fmt.Sprintf("malformed resolver response: %v", err)}
	}

	profile := &models.GuidelineProfile{
		CitationStyle: wire.CitationStyle,
		Font:          wire.Font,
		Spacing:       wire.Spacing,
		MaxWords:      wire.MaxWords,
		Rules:         wire.Rules,
		// Source and Confidence are opaque metadata; passed through untouched.
		Source:     wire.Source,
		Confidence: wire.Confidence,
	}

	if err := profile.Validate(); err != nil {
		return nil, &domain.ResolutionError{Message: fmt.Sprintf("resolver returned incomplete profile: %v", err)}
	}

	return profile, nil
}
