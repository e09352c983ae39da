package crossref

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/docsift/docsift/core"
)

const (
	// MaxReferences is the maximum number of cross-references returned per
	// request.
	MaxReferences = 10

	// conceptualFactor discounts fuzzy concept matches relative to the
	// table's own confidence.
	conceptualFactor float32 = 0.7

	// platformPriorityWeight is the fixed confidence base for
	// platform-specific matches; combined with platformFactor it yields 0.72.
	platformPriorityWeight float32 = 0.9
	platformFactor         float32 = 0.8
)

// Mapper resolves design concepts to candidate technical symbols using the
// mapping table and three match strategies: direct, conceptual, and
// platform-specific.
type Mapper struct {
	table  *Table
	logger *slog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper) error

// WithTable substitutes a custom mapping table.
// Default is the embedded table.
func WithTable(table *Table) Option {
	return func(m *Mapper) error {
		if table == nil {
			return ErrTableRequired
		}
		m.table = table
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Mapper) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMapper creates a mapper over the embedded table unless WithTable
// overrides it.
func NewMapper(opts ...Option) (*Mapper, error) {
	table, err := DefaultTable()
	if err != nil {
		return nil, err
	}

	m := &Mapper{
		table:  table,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// GetComponentMapping returns the table entry for a concept name, or nil
// when the concept is unknown.
func (m *Mapper) GetComponentMapping(concept string) *ComponentMapping {
	return m.table.Lookup(concept)
}

// FindCrossReferences maps a design title and an optional technical symbol to
// confidence-ranked cross-references. Matches from all strategies are merged,
// deduplicated by (concept, symbol) keeping the highest-confidence instance,
// sorted descending, and truncated to MaxReferences.
func (m *Mapper) FindCrossReferences(designTitle, technicalSymbol string, platformHints ...string) []core.CrossReference {
	title := NormalizeConcept(designTitle)
	if title == "" {
		return nil
	}

	best := make(map[[2]string]core.CrossReference)

	for _, key := range m.table.Concepts() {
		if !conceptOverlaps(title, key) {
			continue
		}
		mapping := m.table.Lookup(key)

		for _, candidate := range mapping.Candidates {
			if ref, ok := m.directMatch(mapping, candidate, technicalSymbol); ok {
				keep(best, ref)
			}
			if ref, ok := m.conceptualMatch(mapping, candidate, technicalSymbol); ok {
				keep(best, ref)
			}
			if ref, ok := m.platformMatch(mapping, candidate, platformHints); ok {
				keep(best, ref)
			}
		}
	}

	refs := make([]core.CrossReference, 0, len(best))
	for _, ref := range best {
		refs = append(refs, ref)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Confidence != refs[j].Confidence {
			return refs[i].Confidence > refs[j].Confidence
		}
		return refs[i].TechnicalSymbol < refs[j].TechnicalSymbol
	})
	if len(refs) > MaxReferences {
		refs = refs[:MaxReferences]
	}

	m.logger.Debug("resolved cross-references",
		"designTitle", designTitle, "technicalSymbol", technicalSymbol, "count", len(refs))
	return refs
}

// directMatch fires when the candidate symbol textually contains or is
// contained by the requested symbol. With no requested symbol, the table
// lookup itself counts as direct.
func (m *Mapper) directMatch(mapping *ComponentMapping, candidate Candidate, technicalSymbol string) (core.CrossReference, bool) {
	if technicalSymbol != "" && !symbolsOverlap(candidate.Symbol, technicalSymbol) {
		return core.CrossReference{}, false
	}
	return m.reference(mapping, candidate, candidate.Confidence, core.MappingDirect), true
}

// conceptualMatch fires when the candidate and requested symbols share a
// structural prefix fragment, such as a common framework prefix convention.
func (m *Mapper) conceptualMatch(mapping *ComponentMapping, candidate Candidate, technicalSymbol string) (core.CrossReference, bool) {
	if technicalSymbol == "" {
		return core.CrossReference{}, false
	}
	fragment := prefixFragment(candidate.Symbol)
	if fragment == "" || fragment != prefixFragment(technicalSymbol) {
		return core.CrossReference{}, false
	}
	return m.reference(mapping, candidate, candidate.Confidence*conceptualFactor, core.MappingConceptual), true
}

// platformMatch fires when any platform hint matches a candidate platform.
func (m *Mapper) platformMatch(mapping *ComponentMapping, candidate Candidate, hints []string) (core.CrossReference, bool) {
	for _, hint := range hints {
		hint = strings.ToLower(strings.TrimSpace(hint))
		if hint == "" {
			continue
		}
		for _, platform := range candidate.Platforms {
			if strings.ToLower(platform) == hint {
				confidence := platformPriorityWeight * platformFactor
				return m.reference(mapping, candidate, confidence, core.MappingPlatformSpecific), true
			}
		}
	}
	return core.CrossReference{}, false
}

func (m *Mapper) reference(mapping *ComponentMapping, candidate Candidate, confidence float32, mappingType core.MappingType) core.CrossReference {
	return core.CrossReference{
		DesignConcept:   mapping.Concept,
		TechnicalSymbol: candidate.Symbol,
		Confidence:      confidence,
		MappingType:     mappingType,
		Platforms:       candidate.Platforms,
		Frameworks:      candidate.Frameworks,
		UsageNote:       candidate.UsageNote,
	}
}

// keep records a reference unless a higher-confidence instance for the same
// (concept, symbol) pair already exists.
func keep(best map[[2]string]core.CrossReference, ref core.CrossReference) {
	key := [2]string{ref.DesignConcept, ref.TechnicalSymbol}
	if existing, ok := best[key]; ok && existing.Confidence >= ref.Confidence {
		return
	}
	best[key] = ref
}

// conceptOverlaps reports whether a design title and a table key textually
// overlap in either direction.
func conceptOverlaps(title, key string) bool {
	return strings.Contains(title, key) || strings.Contains(key, title)
}

// symbolsOverlap reports whether one symbol contains the other,
// case-insensitively.
func symbolsOverlap(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// prefixFragment extracts a symbol's leading uppercase framework prefix
// ("UI", "NS", ...). Symbols without a two-letter-plus prefix yield "".
func prefixFragment(symbol string) string {
	runes := []rune(symbol)
	run := 0
	for run < len(runes) && unicode.IsUpper(runes[run]) {
		run++
	}
	// "UIButton" has run 3 ("UIB"); the last capital starts the type name.
	if run < len(runes) && run > 1 && unicode.IsLower(runes[run]) {
		run--
	}
	if run < 2 {
		return ""
	}
	return string(runes[:run])
}
