package rank

import (
	"strings"
	"time"

	"github.com/docsift/docsift/core"
	"github.com/docsift/docsift/index"
)

// Combiner weights for the four signals.
const (
	weightSemantic   float32 = 0.4
	weightKeyword    float32 = 0.3
	weightStructure  float32 = 0.2
	weightContextual float32 = 0.1
)

// Multiplicative boosts, each independently triggerable. Applicable boosts
// compound, so the combined score may exceed 1.
const (
	boostTitleExact float32 = 2.0
	boostPlatform   float32 = 1.5
	boostCategory   float32 = 1.3
	boostRecency    float32 = 1.2
)

// recencyWindow is how recently a section must have been updated to earn
// the recency boost.
const recencyWindow = 180 * 24 * time.Hour

// semanticScore converts an entry's weighted cosine similarity against the
// query vector into a [0,1] component score. Degraded entries and absent
// query vectors score 0.
func semanticScore(entry *index.Entry, queryVector []float32) float32 {
	if entry == nil || len(queryVector) == 0 {
		return 0
	}
	return clamp01(entry.Similarity(queryVector))
}

// keywordScore rewards keyword presence in the title (+2 per keyword) and
// occurrences in the content (+0.5 each, capped at +2 per keyword), then
// normalizes by 2 x keyword count. Zero keywords score 0, not NaN.
func keywordScore(keywords []string, title, content string) float32 {
	if len(keywords) == 0 {
		return 0
	}

	titleLower := strings.ToLower(title)
	contentLower := strings.ToLower(content)

	var total float32
	for _, keyword := range keywords {
		var score float32
		if strings.Contains(titleLower, keyword) {
			score += 2
		}
		occurrences := float32(strings.Count(contentLower, keyword)) * 0.5
		if occurrences > 2 {
			occurrences = 2
		}
		score += occurrences
		total += score
	}

	return clamp01(total / (2 * float32(len(keywords))))
}

// structureScore rewards sections whose structured content can actually
// answer the query's intent.
func structureScore(intent core.Intent, section *core.Section) float32 {
	sc := section.Structured
	if sc == nil {
		return 0
	}

	score := float32(0.3)

	switch intent {
	case core.IntentFindGuideline:
		if len(sc.Guidelines) > 0 {
			score += 0.5
		}
	case core.IntentFindSpecification:
		if sc.HasSpecifications() {
			score += 0.5
		}
	case core.IntentFindExample:
		if len(sc.Examples) > 0 {
			score += 0.5
		}
	default:
		score += 0.2
	}

	return clamp01(score)
}

// contextualScore folds platform fit, category fit, and externally graded
// quality into one signal. Fallback-flagged content is capped by
// QualityMetrics.EffectiveScore, so it is systematically down-ranked without
// this scorer knowing how quality was computed.
func contextualScore(analysis *core.QueryAnalysis, section *core.Section) float32 {
	var score float32

	switch {
	case analysis.Platform != core.PlatformUnknown && section.Platform == analysis.Platform:
		score += 0.4
	case section.Platform == core.PlatformUniversal:
		score += 0.2
	}

	if analysis.Category != core.CategoryUnknown && section.Category == analysis.Category {
		score += 0.3
	}

	score += 0.3 * section.Quality.EffectiveScore()

	return clamp01(score)
}

// combine merges the four component scores with the fixed weights, then
// applies every applicable boost. The result is deliberately not clamped:
// boosts preserve ranking order but can push the score past 1.
func combine(result *core.RankedResult, analysis *core.QueryAnalysis, filters core.Filters, section *core.Section, now time.Time) float32 {
	combined := weightSemantic*result.SemanticScore +
		weightKeyword*result.KeywordScore +
		weightStructure*result.StructureScore +
		weightContextual*result.ContextualScore

	if strings.Contains(strings.ToLower(section.Title), analysis.NormalizedQuery) {
		combined *= boostTitleExact
	}
	if filters.Platform != core.PlatformUnknown && section.Platform == filters.Platform {
		combined *= boostPlatform
	}
	if filters.Category != core.CategoryUnknown && section.Category == filters.Category {
		combined *= boostCategory
	}
	if !section.LastUpdated.IsZero() && now.Sub(section.LastUpdated) <= recencyWindow {
		combined *= boostRecency
	}

	return combined
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
