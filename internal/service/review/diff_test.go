package review

import (
	"strings"
	"testing"

	"guidesync/internal/domain/models"
)

func TestComputeDiff(t *testing.T) {
	tests := []struct {
		name     string
		original string
		current  string
		wantOps  []models.DiffOp
	}{
		{
			name:     "identical content is a single equal segment",
			original: "unchanged text",
			current:  "unchanged text",
			wantOps:  []models.DiffOp{models.DiffEqual},
		},
		{
			name:     "pure insertion",
			original: "Hello",
			current:  "Hello, world",
			wantOps:  []models.DiffOp{models.DiffEqual, models.DiffInsert},
		},
		{
			name:     "pure deletion",
			original: "Hello, world",
			current:  "Hello",
			wantOps:  []models.DiffOp{models.DiffEqual, models.DiffDelete},
		},
		{
			name:     "empty original is one insertion",
			original: "",
			current:  "brand new",
			wantOps:  []models.DiffOp{models.DiffInsert},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := computeDiff(tt.original, tt.current)

			ops := make([]models.DiffOp, len(segments))
			for i, seg := range segments {
				ops[i] = seg.Op
			}
			if len(ops) != len(tt.wantOps) {
				t.Fatalf("ops = %v, want %v", ops, tt.wantOps)
			}
			for i := range ops {
				if ops[i] != tt.wantOps[i] {
					t.Fatalf("ops = %v, want %v", ops, tt.wantOps)
				}
			}
		})
	}
}

func TestComputeDiffRoundTrips(t *testing.T) {
	original := "The quick brown fox jumps over the lazy dog."
	current := "The quick red fox leaps over the sleeping dog."

	segments := computeDiff(original, current)

	// Concatenating equal+delete segments rebuilds the original;
	// equal+insert rebuilds the corrected text.
	var rebuiltOriginal, rebuiltCurrent strings.Builder
	for _, seg := range segments {
		switch seg.Op {
		case models.DiffEqual:
			rebuiltOriginal.WriteString(seg.Text)
			rebuiltCurrent.WriteString(seg.Text)
		case models.DiffDelete:
			rebuiltOriginal.WriteString(seg.Text)
		case models.DiffInsert:
			rebuiltCurrent.WriteString(seg.Text)
		}
	}
	if rebuiltOriginal.String() != original {
		t.Errorf("rebuilt original = %q", rebuiltOriginal.String())
	}
	if rebuiltCurrent.String() != current {
		t.Errorf("rebuilt current = %q", rebuiltCurrent.String())
	}
}
