package crossref

import (
	"strings"

	"github.com/docsift/docsift/core"
)

const (
	// MinConfidence is the floor below which a cross-reference is flagged.
	MinConfidence float32 = 0.3

	// minNoteLength is the shortest usage note considered explanatory.
	minNoteLength = 10
)

// Issue describes one validation problem with a cross-reference.
type Issue string

const (
	IssueLowConfidence Issue = "confidence below minimum"
	IssueNoPlatforms   Issue = "no platforms attached"
	IssueShortNote     Issue = "usage note missing or too short"
)

// Validate inspects a single cross-reference and returns an explicit list of
// issues rather than silently dropping data. A valid reference yields nil.
func Validate(ref *core.CrossReference) []Issue {
	var issues []Issue

	if ref.Confidence < MinConfidence {
		issues = append(issues, IssueLowConfidence)
	}
	if len(ref.Platforms) == 0 {
		issues = append(issues, IssueNoPlatforms)
	}
	if len(strings.TrimSpace(ref.UsageNote)) < minNoteLength {
		issues = append(issues, IssueShortNote)
	}

	return issues
}
