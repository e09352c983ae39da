package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that re-scraping the same
// page yields the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Platform identifies the platform a documentation section applies to.
type Platform int

const (
	// PlatformUnknown is the zero value, meaning no platform was specified.
	PlatformUnknown Platform = iota
	PlatformIOS
	PlatformMacOS
	PlatformWatchOS
	PlatformTVOS
	PlatformVisionOS
	// PlatformUniversal marks sections that apply to every platform.
	PlatformUniversal
)

var platformNames = map[Platform]string{
	PlatformIOS:       "iOS",
	PlatformMacOS:     "macOS",
	PlatformWatchOS:   "watchOS",
	PlatformTVOS:      "tvOS",
	PlatformVisionOS:  "visionOS",
	PlatformUniversal: "universal",
}

// String returns the canonical name of the platform, or "" for the zero value.
func (p Platform) String() string {
	return platformNames[p]
}

// ParsePlatform resolves a platform from its name, case-insensitively.
// Returns ErrInvalidPlatform for unrecognized names.
func ParsePlatform(name string) (Platform, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for p, n := range platformNames {
		if strings.ToLower(n) == lowered {
			return p, nil
		}
	}
	return PlatformUnknown, ErrInvalidPlatform
}

// Category identifies the documentation taxonomy bucket a section belongs to.
type Category int

const (
	// CategoryUnknown is the zero value, meaning no category was specified.
	CategoryUnknown Category = iota
	CategoryFoundations
	CategoryLayout
	CategoryNavigation
	CategoryPresentation
	CategorySelectionAndInput
	CategoryStatus
	CategorySystemCapabilities
	CategoryVisualDesign
	CategoryMenusAndActions
	CategoryInputs
	CategoryTechnologies
	CategoryComponents
)

var categoryNames = map[Category]string{
	CategoryFoundations:        "foundations",
	CategoryLayout:             "layout",
	CategoryNavigation:         "navigation",
	CategoryPresentation:       "presentation",
	CategorySelectionAndInput:  "selection-and-input",
	CategoryStatus:             "status",
	CategorySystemCapabilities: "system-capabilities",
	CategoryVisualDesign:       "visual-design",
	CategoryMenusAndActions:    "menus-and-actions",
	CategoryInputs:             "inputs",
	CategoryTechnologies:       "technologies",
	CategoryComponents:         "components",
}

// String returns the canonical name of the category, or "" for the zero value.
func (c Category) String() string {
	return categoryNames[c]
}

// ParseCategory resolves a category from its name, case-insensitively.
// Returns ErrInvalidCategory for unrecognized names.
func ParseCategory(name string) (Category, error) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if n == lowered {
			return c, nil
		}
	}
	return CategoryUnknown, ErrInvalidCategory
}

// QualityMetrics grades extracted section text. Produced by the upstream
// content normalizer; this engine only consumes it as a ranking signal.
type QualityMetrics struct {
	Score             float32 // overall quality in [0,1]
	Confidence        float32 // grader confidence in [0,1]
	IsFallbackContent bool    // true when the page was a placeholder or redirect
	StructureScore    float32
	HeadingCount      int
	CodeExampleCount  int
}

// EffectiveScore returns the quality score used for ranking.
// Fallback content is capped at 0.2 so placeholder pages never outrank
// authoritative ones.
func (q *QualityMetrics) EffectiveScore() float32 {
	if q == nil {
		return 0
	}
	if q.IsFallbackContent && q.Score > 0.2 {
		return 0.2
	}
	return q.Score
}

// StructuredContent holds the parsed shape of a documentation section.
// Presence of the struct itself is the tag: a nil pointer on Section means
// the page had no recognizable structure.
type StructuredContent struct {
	Overview       string
	Guidelines     []string
	Examples       []string
	Specifications string // empty when the section carries no spec block
}

// HasSpecifications reports whether a specifications block was extracted.
func (sc *StructuredContent) HasSpecifications() bool {
	return sc != nil && sc.Specifications != ""
}

// SectionID returns the section's identifier, deriving a stable
// content-based one when the acquisition layer did not assign it.
func SectionID(s *Section) ID {
	if s.Id != 0 {
		return s.Id
	}
	return IDFromContent(s.URL + "\x00" + s.Title)
}

// Section is one unit of documentation handed to the engine by the content
// acquisition collaborator. Immutable once indexed; a re-scrape supersedes
// the old value rather than mutating it.
type Section struct {
	Id          ID
	Title       string
	URL         string
	Platform    Platform
	Category    Category
	Content     string
	Structured  *StructuredContent // nil when the page had no structure
	Quality     *QualityMetrics    // nil until the grader has run
	LastUpdated time.Time
}

// Intent is a coarse classification of what kind of answer a query seeks.
type Intent int

const (
	IntentGeneralSearch Intent = iota
	IntentFindExample
	IntentFindGuideline
	IntentFindSpecification
	IntentComparePlatforms
	IntentFindComponent
)

var intentNames = map[Intent]string{
	IntentGeneralSearch:     "general_search",
	IntentFindExample:       "find_example",
	IntentFindGuideline:     "find_guideline",
	IntentFindSpecification: "find_specification",
	IntentComparePlatforms:  "compare_platforms",
	IntentFindComponent:     "find_component",
}

func (i Intent) String() string {
	return intentNames[i]
}

// EntityType categorizes a recognized query entity.
type EntityType int

const (
	EntityComponent EntityType = iota + 1
	EntityPlatform
	EntityProperty
)

var entityTypeNames = map[EntityType]string{
	EntityComponent: "component",
	EntityPlatform:  "platform",
	EntityProperty:  "property",
}

func (e EntityType) String() string {
	return entityTypeNames[e]
}

// EntityMatch is a recognized sub-span of a query tagged with a semantic type.
type EntityMatch struct {
	Text            string
	Type            EntityType
	Confidence      float32
	NormalizedValue string
}

// QueryAnalysis is the structured form of a free-text query.
// Ephemeral: created per query, never persisted.
type QueryAnalysis struct {
	OriginalQuery   string
	NormalizedQuery string
	Intent          Intent
	Entities        []EntityMatch
	Keywords        []string // deduplicated, order of first occurrence
	Concepts        []string
	Platform        Platform // PlatformUnknown when neither filtered nor inferred
	Category        Category // CategoryUnknown when neither filtered nor inferred
}

// Filters narrows a search to a platform and/or category.
// Zero values mean "no filter".
type Filters struct {
	Platform Platform
	Category Category
}

// RankedResult is one scored search hit. The four component scores are each
// in [0,1] before boosting; CombinedScore may exceed 1 after multiplicative
// boosts and is deliberately not clamped, preserving ranking order.
type RankedResult struct {
	SectionId       ID
	Title           string
	URL             string
	Platform        Platform
	SemanticScore   float32
	KeywordScore    float32
	StructureScore  float32
	ContextualScore float32
	CombinedScore   float32
	MatchedConcepts []string
	Snippet         string
	Degraded        bool // true when no semantic signal was available for this result
}

// MappingType classifies how a cross-reference was found.
type MappingType int

const (
	MappingDirect MappingType = iota + 1
	MappingConceptual
	MappingPlatformSpecific
)

var mappingTypeNames = map[MappingType]string{
	MappingDirect:           "direct",
	MappingConceptual:       "conceptual",
	MappingPlatformSpecific: "platform-specific",
}

func (m MappingType) String() string {
	return mappingTypeNames[m]
}

// CrossReference maps a design concept to a candidate technical symbol.
// Built on demand from the mapping table; never persisted across calls.
type CrossReference struct {
	DesignConcept   string
	TechnicalSymbol string
	Confidence      float32
	MappingType     MappingType
	Platforms       []string
	Frameworks      []string
	UsageNote       string
}
