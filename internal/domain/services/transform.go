package services

import (
	"context"

	"guidesync/internal/domain/models"
)

// ProgressFunc receives incremental transform progress in the range 0..100.
// Implementations must tolerate out-of-order and duplicate calls.
type ProgressFunc func(percent int)

// TransformRequest is one submission to the transform service.
type TransformRequest struct {
	DocumentID    string
	SourceContent string
	Profile       models.GuidelineProfile
	Language      string
}

// TransformProvider is one backend capable of rewriting a document to
// conform to a guideline profile. Providers are opaque: the core only
// consumes their shaped result.
type TransformProvider interface {
	// Name returns the provider name used for registry routing.
	Name() string

	// Transform rewrites the source content. Blocking; honors ctx
	// cancellation. Progress calls are best-effort.
	Transform(ctx context.Context, req *TransformRequest, progress ProgressFunc) (*models.TransformResult, error)
}
