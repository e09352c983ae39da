package analyze

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/docsift/docsift/core"
)

// Analyzer turns a free-text query into a structured core.QueryAnalysis.
type Analyzer struct {
	tokenizer  Tokenizer
	classifier IntentClassifier
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithTokenizer swaps the keyword tokenizer.
func WithTokenizer(tokenizer Tokenizer) Option {
	return func(a *Analyzer) error {
		if tokenizer == nil {
			return ErrTokenizerRequired
		}
		a.tokenizer = tokenizer
		return nil
	}
}

// WithClassifier swaps the intent classifier.
func WithClassifier(classifier IntentClassifier) Option {
	return func(a *Analyzer) error {
		if classifier == nil {
			return ErrClassifierRequired
		}
		a.classifier = classifier
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnalyzer creates a query analyzer with the default heuristic tokenizer
// and intent classifier.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		tokenizer:  NewTokenizer(),
		classifier: NewIntentClassifier(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Analyze validates and analyzes a query, resolving platform and category
// from the explicit filters when present, otherwise from extracted entities.
// An empty or over-long query is rejected with core.ErrInvalidQuery before
// any analysis runs.
func (a *Analyzer) Analyze(query string, filters core.Filters) (*core.QueryAnalysis, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	if err := core.ValidateFilters(filters); err != nil {
		return nil, err
	}

	normalized := strings.ToLower(strings.TrimSpace(query))

	entities := extractEntities(normalized)
	keywords := a.tokenizer.Tokenize(normalized)
	concepts := extractConcepts(normalized)
	intent := a.classifier.Classify(normalized, entities)

	analysis := &core.QueryAnalysis{
		OriginalQuery:   query,
		NormalizedQuery: normalized,
		Intent:          intent,
		Entities:        entities,
		Keywords:        keywords,
		Concepts:        concepts,
		Platform:        resolvePlatform(filters, entities),
		Category:        resolveCategory(filters, entities, concepts),
	}

	a.logger.Debug("analyzed query",
		"intent", intent.String(),
		"entities", len(entities),
		"keywords", len(keywords),
		"platform", analysis.Platform.String())

	return analysis, nil
}

// extractEntities scans the query against the three fixed term lists.
// Longer phrases are matched first so "navigation bar" wins over "navigation".
func extractEntities(normalized string) []core.EntityMatch {
	var entities []core.EntityMatch
	matched := make(map[string]bool)

	scan := func(terms map[string]string, entityType core.EntityType, confidence float32) {
		phrases := make([]string, 0, len(terms))
		for phrase := range terms {
			phrases = append(phrases, phrase)
		}
		sort.Slice(phrases, func(i, j int) bool {
			if len(phrases[i]) != len(phrases[j]) {
				return len(phrases[i]) > len(phrases[j])
			}
			return phrases[i] < phrases[j]
		})

		for _, phrase := range phrases {
			normalizedValue := terms[phrase]
			key := entityType.String() + ":" + normalizedValue
			if matched[key] {
				continue
			}
			if containsPhrase(normalized, phrase) {
				matched[key] = true
				entities = append(entities, core.EntityMatch{
					Text:            phrase,
					Type:            entityType,
					Confidence:      confidence,
					NormalizedValue: normalizedValue,
				})
			}
		}
	}

	scan(componentTerms, core.EntityComponent, componentConfidence)
	scan(platformTerms, core.EntityPlatform, platformConfidence)
	scan(propertyTerms, core.EntityProperty, propertyConfidence)

	return entities
}

// containsPhrase reports whether phrase occurs in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	padded := " " + stripPunctuation(text) + " "
	return strings.Contains(padded, " "+phrase+" ")
}

func stripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '.', ',', '!', '?', ';', ':', '\'', '"', '(', ')', '[', ']', '{', '}':
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractConcepts membership-tests the query against the concept vocabulary.
func extractConcepts(normalized string) []string {
	var concepts []string
	for _, concept := range conceptVocabulary {
		if strings.Contains(normalized, concept) {
			concepts = append(concepts, concept)
		}
	}
	return concepts
}

// Concepts returns the fixed-vocabulary concepts present in arbitrary text.
// Used by the indexer to tag section entries with the same labels the
// analyzer produces for queries.
func Concepts(text string) []string {
	return extractConcepts(strings.ToLower(text))
}

func resolvePlatform(filters core.Filters, entities []core.EntityMatch) core.Platform {
	if filters.Platform != core.PlatformUnknown {
		return filters.Platform
	}
	for _, entity := range entities {
		if entity.Type != core.EntityPlatform {
			continue
		}
		if platform, err := core.ParsePlatform(entity.NormalizedValue); err == nil {
			return platform
		}
	}
	return core.PlatformUnknown
}

func resolveCategory(filters core.Filters, entities []core.EntityMatch, concepts []string) core.Category {
	if filters.Category != core.CategoryUnknown {
		return filters.Category
	}
	for _, concept := range concepts {
		if concept == "navigation" {
			return core.CategoryNavigation
		}
		if concept == "layout" {
			return core.CategoryLayout
		}
	}
	for _, entity := range entities {
		if entity.Type == core.EntityComponent {
			return core.CategoryComponents
		}
	}
	return core.CategoryUnknown
}
