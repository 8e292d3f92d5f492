package review

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"guidesync/internal/domain/models"
)

// computeDiff renders the original/corrected comparison as ordered segments
// for the highlight overlay. Rendering only: the edit session is never
// consulted or mutated here.
func computeDiff(original, current string) []models.DiffSegment {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(original, current, false))

	segments := make([]models.DiffSegment, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op models.DiffOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = models.DiffInsert
		case diffmatchpatch.DiffDelete:
			op = models.DiffDelete
		default:
			op = models.DiffEqual
		}
		segments = append(segments, models.DiffSegment{Op: op, Text: d.Text})
	}
	return segments
}
