package wildcard

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern is a compiled glob-style pattern. `*` matches any sequence and `?`
// matches exactly one character. A pattern without wildcards degrades to a
// plain case-insensitive substring test.
type Pattern struct {
	raw           string
	lowered       string
	re            *regexp.Regexp // nil when the pattern has no wildcards
	wildcardCount int
}

// Compile parses a wildcard pattern. All regex metacharacters except `*` and
// `?` are escaped, and the expression is anchored so the whole text must
// match.
func Compile(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, ErrEmptyPattern
	}

	p := &Pattern{
		raw:     pattern,
		lowered: strings.ToLower(pattern),
	}

	p.wildcardCount = strings.Count(pattern, "*") + strings.Count(pattern, "?")
	if p.wildcardCount == 0 {
		return p, nil
	}

	var sb strings.Builder
	sb.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	p.re = re

	return p, nil
}

// String returns the original pattern text.
func (p *Pattern) String() string {
	return p.raw
}

// HasWildcards reports whether the pattern contains `*` or `?`.
func (p *Pattern) HasWildcards() bool {
	return p.wildcardCount > 0
}

// Matches reports whether text satisfies the pattern.
func (p *Pattern) Matches(text string) bool {
	if p.re != nil {
		return p.re.MatchString(text)
	}
	return strings.Contains(strings.ToLower(text), p.lowered)
}

// Score rates how well text matches the pattern, returning false for a
// non-match. Scores for matches are clamped to [0.1, 1.0]: a match never
// scores exactly 0, which keeps "weak match" distinguishable from "no match".
func (p *Pattern) Score(text string) (float32, bool) {
	if !p.Matches(text) {
		return 0, false
	}
	if p.re == nil {
		return p.literalScore(text), true
	}
	return p.wildcardScore(text), true
}

func (p *Pattern) literalScore(text string) float32 {
	lowered := strings.ToLower(text)
	switch {
	case lowered == p.lowered:
		return 1.0
	case strings.HasPrefix(lowered, p.lowered):
		return 0.9
	case strings.Contains(lowered, p.lowered):
		return 0.7
	default:
		return 0.5
	}
}

func (p *Pattern) wildcardScore(text string) float32 {
	score := float32(0.6)

	// Fewer wildcards means a more specific pattern.
	if specificity := 5 - p.wildcardCount; specificity > 0 {
		score += 0.1 * float32(specificity)
	}

	// Longer patterns carry more literal signal.
	lengthBonus := 0.02 * float32(len(p.raw))
	if lengthBonus > 0.2 {
		lengthBonus = 0.2
	}
	score += lengthBonus

	// Generic patterns matching long, loosely related text get penalized.
	if p.wildcardCount >= 2 && len(text) > 3*len(p.raw) {
		score -= 0.1
	}

	return clampScore(score)
}

func clampScore(score float32) float32 {
	if score < 0.1 {
		return 0.1
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// FieldFunc returns the value of a named field on an item. Unknown field
// names should return "".
type FieldFunc[T any] func(item T, field string) string

// FieldMatch records which field of an item matched and how well.
type FieldMatch struct {
	Field string
	Text  string
	Score float32
}

// Result pairs an item with its best field match.
type Result[T any] struct {
	Item  T
	Match FieldMatch
}

// Match scores every item's named fields against the pattern and returns the
// matching items with their best-scoring field, sorted by score descending.
// Items where no field matches are excluded.
func Match[T any](items []T, pattern string, fields []string, value FieldFunc[T]) ([]Result[T], error) {
	p, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	results := make([]Result[T], 0, len(items))
	for _, item := range items {
		best := FieldMatch{Score: -1}
		for _, field := range fields {
			text := value(item, field)
			if text == "" {
				continue
			}
			score, ok := p.Score(text)
			if !ok {
				continue
			}
			if score > best.Score {
				best = FieldMatch{Field: field, Text: text, Score: score}
			}
		}
		if best.Score >= 0 {
			results = append(results, Result[T]{Item: item, Match: best})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})

	return results, nil
}
