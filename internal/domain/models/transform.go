package models

// TransformResult is the shaped output of the external transform service:
// a guideline-conformant rewrite of the source plus the human-readable
// change descriptions the review surface displays.
type TransformResult struct {
	ProcessedContent  string           `json:"processed_content"`
	Suggestions       []string         `json:"suggestions"`
	GuidelinesApplied GuidelineProfile `json:"guidelines_applied"`
}

// ProgressEvent reports transform progress for one document submission.
// Percent values may arrive out of order or duplicated; consumers keep
// the running maximum, and a terminal event always wins over any pending
// percentage.
type ProgressEvent struct {
	DocumentID string `json:"document_id"`
	Percent    int    `json:"percent"`
	Done       bool   `json:"done"`
	Error      string `json:"error,omitempty"`
}
