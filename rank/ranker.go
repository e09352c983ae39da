package rank

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/docsift/docsift/ai"
	"github.com/docsift/docsift/analyze"
	"github.com/docsift/docsift/core"
	"github.com/docsift/docsift/index"
)

const (
	// DefaultLimit is the number of results returned when the caller does
	// not specify a positive limit.
	DefaultLimit = 10

	// DefaultMinSemanticScore is the threshold below which sections are
	// discarded when a semantic signal is available.
	DefaultMinSemanticScore float32 = 0.1
)

// Ranker scores documentation sections against analyzed queries by blending
// semantic, keyword, structure, and contextual signals.
type Ranker struct {
	index       *index.Index
	indexer     *index.Indexer
	provider    ai.EmbeddingProvider
	analyzer    *analyze.Analyzer
	minSemantic float32
	logger      *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithAnalyzer sets a custom query analyzer.
func WithAnalyzer(analyzer *analyze.Analyzer) Option {
	return func(r *Ranker) error {
		if analyzer != nil {
			r.analyzer = analyzer
		}
		return nil
	}
}

// WithMinSemanticScore overrides the semantic relevance floor.
func WithMinSemanticScore(threshold float32) Option {
	return func(r *Ranker) error {
		if threshold < 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		r.minSemantic = threshold
		return nil
	}
}

// NewRanker creates a new ranker over the given index. Sections not yet in
// the index are indexed lazily during search via the indexer.
func NewRanker(idx *index.Index, indexer *index.Indexer, provider ai.EmbeddingProvider, opts ...Option) (*Ranker, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	analyzer, err := analyze.NewAnalyzer()
	if err != nil {
		return nil, err
	}

	r := &Ranker{
		index:       idx,
		indexer:     indexer,
		provider:    provider,
		analyzer:    analyzer,
		minSemantic: DefaultMinSemanticScore,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search ranks sections against the query and returns up to limit results in
// descending combined-score order. A limit <= 0 means DefaultLimit.
func (r *Ranker) Search(ctx context.Context, query string, sections []*core.Section, filters core.Filters, limit int) ([]*core.RankedResult, error) {
	return r.SearchWithMonitor(ctx, query, sections, filters, limit, nil)
}

// SearchWithMonitor ranks sections against the query with monitoring.
// The monitor receives callbacks at each stage of the ranking process.
//
// When the embedding provider is unavailable or the query embedding fails,
// ranking degrades to the lexical, structure, and contextual signals: the
// semantic component scores 0 and the relevance floor is not applied, so
// degraded searches still return results.
func (r *Ranker) SearchWithMonitor(ctx context.Context, query string, sections []*core.Section, filters core.Filters, limit int, monitor SearchMonitor) ([]*core.RankedResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	if limit <= 0 {
		limit = DefaultLimit
	}

	analysis, err := r.analyzer.Analyze(query, filters)
	if err != nil {
		return nil, err
	}
	monitor.AfterAnalysis(analysis)

	var queryVector []float32
	if r.provider.Ready() {
		queryVector, err = r.provider.EmbedText(ctx, analysis.NormalizedQuery)
		if err != nil {
			r.logger.Warn("query embedding failed, ranking without semantic signal", "err", err)
			queryVector = nil
		}
	}
	degraded := len(queryVector) == 0
	monitor.AfterQueryEmbedding(degraded)

	now := time.Now()
	results := make([]*core.RankedResult, 0, len(sections))

	for _, section := range sections {
		if section == nil {
			continue
		}

		// A platform filter excludes mismatched sections outright; universal
		// sections always pass.
		if filters.Platform != core.PlatformUnknown &&
			section.Platform != filters.Platform &&
			section.Platform != core.PlatformUniversal {
			monitor.SectionSkipped(core.SectionID(section), section.Title, "platform filter")
			continue
		}

		entry, err := r.entryFor(ctx, section)
		if err != nil {
			r.logger.Warn("skipping section that could not be indexed", "title", section.Title, "err", err)
			monitor.SectionSkipped(core.SectionID(section), section.Title, "indexing failed")
			continue
		}

		semantic := semanticScore(entry, queryVector)
		semanticAvailable := !degraded && !entry.Degraded
		if semanticAvailable && semantic < r.minSemantic {
			monitor.SectionDiscarded(entry.SectionId, semantic)
			continue
		}

		result := &core.RankedResult{
			SectionId:       entry.SectionId,
			Title:           section.Title,
			URL:             section.URL,
			Platform:        section.Platform,
			SemanticScore:   semantic,
			KeywordScore:    keywordScore(analysis.Keywords, section.Title, section.Content),
			StructureScore:  structureScore(analysis.Intent, section),
			ContextualScore: contextualScore(analysis, section),
			MatchedConcepts: matchedConcepts(analysis.Concepts, entry.Metadata.Concepts),
			Snippet:         Snippet(section.Content, analysis.Keywords),
			Degraded:        !semanticAvailable,
		}
		result.CombinedScore = combine(result, analysis, filters, section, now)

		monitor.SectionScored(result)
		results = append(results, result)
	}

	// Sort by combined score descending; ties break on title for stable output.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CombinedScore != results[j].CombinedScore {
			return results[i].CombinedScore > results[j].CombinedScore
		}
		return results[i].Title < results[j].Title
	})
	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)

	return results, nil
}

// entryFor returns the index entry for a section, indexing it on demand.
func (r *Ranker) entryFor(ctx context.Context, section *core.Section) (*index.Entry, error) {
	id := core.SectionID(section)
	if entry, ok := r.index.Get(id); ok {
		return entry, nil
	}

	if err := r.indexer.IndexSection(ctx, section); err != nil {
		return nil, err
	}

	entry, ok := r.index.Get(id)
	if !ok {
		return nil, ErrEntryMissing
	}
	return entry, nil
}

// matchedConcepts returns the query concepts also tagged on the section,
// preserving query order.
func matchedConcepts(queryConcepts, sectionConcepts []string) []string {
	if len(queryConcepts) == 0 || len(sectionConcepts) == 0 {
		return nil
	}

	tagged := make(map[string]bool, len(sectionConcepts))
	for _, c := range sectionConcepts {
		tagged[c] = true
	}

	var matched []string
	for _, c := range queryConcepts {
		if tagged[c] {
			matched = append(matched, c)
		}
	}
	return matched
}
