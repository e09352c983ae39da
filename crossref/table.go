package crossref

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed mappings.toml
var defaultMappings []byte

// Candidate is one technical implementation of a design concept.
type Candidate struct {
	Symbol     string   `toml:"symbol"`
	Frameworks []string `toml:"frameworks"`
	Platforms  []string `toml:"platforms"`
	Confidence float32  `toml:"confidence"`
	UsageNote  string   `toml:"usage_note"`
}

// ComponentMapping is the ranked candidate list for one design concept.
type ComponentMapping struct {
	Concept    string      `toml:"concept"`
	Candidates []Candidate `toml:"candidates"`
}

// Table holds the concept-to-implementation mapping, keyed by normalized
// concept name. It is versioned data, loadable independently of the ranking
// logic.
type Table struct {
	mappings map[string]*ComponentMapping
	order    []string
}

type tableDocument struct {
	Mappings []*ComponentMapping `toml:"mappings"`
}

// DefaultTable parses the embedded mapping table.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultMappings)
}

// ParseTable decodes a TOML mapping document.
func ParseTable(data []byte) (*Table, error) {
	var doc tableDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	table := &Table{
		mappings: make(map[string]*ComponentMapping, len(doc.Mappings)),
		order:    make([]string, 0, len(doc.Mappings)),
	}
	for _, mapping := range doc.Mappings {
		key := NormalizeConcept(mapping.Concept)
		if key == "" {
			return nil, fmt.Errorf("%w: mapping with empty concept", ErrInvalidTable)
		}
		if _, exists := table.mappings[key]; exists {
			return nil, fmt.Errorf("%w: duplicate concept %q", ErrInvalidTable, key)
		}
		mapping.Concept = key
		table.mappings[key] = mapping
		table.order = append(table.order, key)
	}
	return table, nil
}

// Lookup returns the mapping for a concept name, or nil when absent.
func (t *Table) Lookup(concept string) *ComponentMapping {
	return t.mappings[NormalizeConcept(concept)]
}

// Concepts returns the table's concept keys in document order.
func (t *Table) Concepts() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of concepts in the table.
func (t *Table) Len() int {
	return len(t.mappings)
}

// NormalizeConcept lowercases and trims a concept name for table lookup.
func NormalizeConcept(concept string) string {
	return strings.ToLower(strings.TrimSpace(concept))
}
