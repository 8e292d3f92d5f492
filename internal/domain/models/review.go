package models

import "fmt"

// ViewMode selects which document variant(s) the comparison surface shows.
type ViewMode string

const (
	ViewSplit         ViewMode = "split"
	ViewOriginalOnly  ViewMode = "original-only"
	ViewCorrectedOnly ViewMode = "corrected-only"
)

// ParseViewMode validates a client-supplied view mode string.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewSplit, ViewOriginalOnly, ViewCorrectedOnly:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("unknown view mode %q", s)
}

// ReviewState is the comparison controller's lifecycle state.
type ReviewState string

const (
	ReviewLoading ReviewState = "loading"
	ReviewReady   ReviewState = "ready"
	ReviewEditing ReviewState = "editing"
	ReviewSaving  ReviewState = "saving"
)

// DiffOp labels one diff segment of the highlight rendering.
type DiffOp string

const (
	DiffEqual  DiffOp = "equal"
	DiffInsert DiffOp = "insert"
	DiffDelete DiffOp = "delete"
)

// DiffSegment is one span of the original/corrected comparison.
// Purely additive rendering data; computing it never touches the
// edit session.
type DiffSegment struct {
	Op   DiffOp `json:"op"`
	Text string `json:"text"`
}

// ReviewSnapshot is the read model of an open review controller, returned
// to the UI after every action.
type ReviewSnapshot struct {
	ID         string      `json:"id"`
	DocumentID string      `json:"document_id"`
	State      ReviewState `json:"state"`
	ViewMode   ViewMode    `json:"view_mode"`

	EditingEnabled       bool `json:"editing_enabled"`
	DiffHighlightEnabled bool `json:"diff_highlight_enabled"`

	OriginalContent string `json:"original_content"`
	CurrentContent  string `json:"current_content"`

	Dirty   bool `json:"dirty"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`

	// WordCount is the current content's word count, for display against
	// the journal's word limit.
	WordCount int `json:"word_count"`

	// Diff is populated only while DiffHighlightEnabled is true.
	Diff []DiffSegment `json:"diff,omitempty"`
}
