package analyze

import (
	"strings"

	"github.com/docsift/docsift/core"
)

// IntentClassifier assigns a coarse intent to a normalized query.
// The heuristic implementation applies ordered substring rules; a rule
// engine or statistical classifier can satisfy the same interface.
type IntentClassifier interface {
	Classify(normalizedQuery string, entities []core.EntityMatch) core.Intent
}

// ruleClassifier is the default ordered-rule IntentClassifier.
type ruleClassifier struct{}

var _ IntentClassifier = (*ruleClassifier)(nil)

// NewIntentClassifier returns the default ordered-rule classifier.
func NewIntentClassifier() IntentClassifier {
	return &ruleClassifier{}
}

// Classify applies the rules in order; the first match wins.
func (rc *ruleClassifier) Classify(normalizedQuery string, entities []core.EntityMatch) core.Intent {
	switch {
	case strings.Contains(normalizedQuery, "how to") || strings.Contains(normalizedQuery, "example"):
		return core.IntentFindExample
	case strings.Contains(normalizedQuery, "guideline") || strings.Contains(normalizedQuery, "best practice"):
		return core.IntentFindGuideline
	case strings.Contains(normalizedQuery, "size") || strings.Contains(normalizedQuery, "dimension") ||
		strings.Contains(normalizedQuery, "spec"):
		return core.IntentFindSpecification
	case hasToken(normalizedQuery, "vs") || strings.Contains(normalizedQuery, "compare"):
		return core.IntentComparePlatforms
	case hasComponentEntity(entities):
		return core.IntentFindComponent
	default:
		return core.IntentGeneralSearch
	}
}

// hasToken matches whole words only, so "vs" doesn't fire inside e.g. "divs".
func hasToken(normalizedQuery, token string) bool {
	for _, word := range strings.Fields(normalizedQuery) {
		if strings.Trim(word, ".,!?;:") == token {
			return true
		}
	}
	return false
}

func hasComponentEntity(entities []core.EntityMatch) bool {
	for _, entity := range entities {
		if entity.Type == core.EntityComponent {
			return true
		}
	}
	return false
}
