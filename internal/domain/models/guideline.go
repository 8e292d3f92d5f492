package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// GuidelineProfile holds the formatting rules resolved for a target journal.
// Descriptive only: this backend displays and forwards the profile, it does
// not enforce the rules itself (the transform service does).
type GuidelineProfile struct {
	CitationStyle string   `json:"citation_style" yaml:"citation_style"`
	Font          string   `json:"font" yaml:"font"`
	Spacing       string   `json:"spacing" yaml:"spacing"`
	MaxWords      int      `json:"max_words" yaml:"max_words"`
	Rules         []string `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Source and Confidence are opaque resolver metadata. The resolver's
	// extraction accuracy is not verifiable here, so they pass through
	// untouched and are never computed or validated semantically.
	Source     string  `json:"source,omitempty" yaml:"source,omitempty"`
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Validate checks the structural shape of a profile at the boundary.
// Resolver responses are parsed-and-validated once; the rest of the core
// works with the strict type and never re-checks.
func (p GuidelineProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CitationStyle, validation.Required),
		validation.Field(&p.Font, validation.Required),
		validation.Field(&p.Spacing, validation.Required),
		validation.Field(&p.MaxWords, validation.Min(0)),
	)
}

// JournalEntry is one row of the pre-seeded known-journal catalog.
// Selecting a catalog journal resolves synchronously with its profile.
type JournalEntry struct {
	Name      string           `json:"name" yaml:"name"`
	Publisher string           `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	URL       string           `json:"url,omitempty" yaml:"url,omitempty"`
	Profile   GuidelineProfile `json:"profile" yaml:"profile"`
}

func (e JournalEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Profile),
	)
}
