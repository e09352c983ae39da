package analyze

import "strings"

// Tokenizer extracts candidate keyword tokens from a normalized query.
// The heuristic implementation filters stop words; a statistical tokenizer
// can be swapped in without touching the scorers.
type Tokenizer interface {
	Tokenize(normalizedQuery string) []string
}

// Stop words filtered out during keyword extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "how": true, "what": true, "when": true,
	"where": true, "should": true, "can": true, "use": true, "my": true,
}

// stopWordTokenizer is the default heuristic Tokenizer.
type stopWordTokenizer struct{}

var _ Tokenizer = (*stopWordTokenizer)(nil)

// NewTokenizer returns the default stop-word filtering tokenizer.
func NewTokenizer() Tokenizer {
	return &stopWordTokenizer{}
}

// Tokenize splits the query into words, trims punctuation, removes stop
// words and tokens shorter than three characters, and deduplicates while
// preserving first-occurrence order.
func (st *stopWordTokenizer) Tokenize(normalizedQuery string) []string {
	words := strings.Fields(normalizedQuery)
	seen := make(map[string]bool, len(words))
	keywords := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.Trim(word, ".,!?;:'\"-()[]{}")
		if len(cleaned) <= 2 || stopWords[cleaned] || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		keywords = append(keywords, cleaned)
	}

	return keywords
}
