package index

import (
	"math"
	"time"

	"github.com/docsift/docsift/core"
)

// Weights applied when combining per-slice similarities. A title match is
// the strongest relevance signal; raw body text is the most diffuse.
const (
	weightTitle       float32 = 0.4
	weightOverview    float32 = 0.3
	weightGuidelines  float32 = 0.2
	weightFullContent float32 = 0.1
)

// EmbeddingSet holds the four precomputed vectors for a section.
// Degraded entries carry zero vectors of the provider's dimension.
type EmbeddingSet struct {
	Title       []float32
	Overview    []float32
	Guidelines  []float32
	FullContent []float32
}

// Metadata is the per-entry section metadata used by the non-semantic scorers.
type Metadata struct {
	Platform     core.Platform
	Category     core.Category
	Concepts     []string
	QualityScore float32
	LastUpdated  time.Time
}

// Entry is one per-section record in the semantic index. Entries are
// immutable once published; a re-index publishes a replacement.
type Entry struct {
	SectionId  core.ID
	Embeddings EmbeddingSet
	Metadata   Metadata

	// Degraded marks entries with no semantic signal at all: every vector
	// was zero-filled because the embedding provider was unavailable, or
	// failed for each slice, when the entry was built. A failure on just
	// some slices zeroes those vectors but leaves the entry usable.
	Degraded bool
}

// Similarity returns the weighted cosine similarity between a query vector
// and this entry's four slices. Zero-filled slices contribute 0, so an
// entry with failed slices still scores on the ones that embedded.
func (e *Entry) Similarity(query []float32) float32 {
	return weightTitle*Cosine(query, e.Embeddings.Title) +
		weightOverview*Cosine(query, e.Embeddings.Overview) +
		weightGuidelines*Cosine(query, e.Embeddings.Guidelines) +
		weightFullContent*Cosine(query, e.Embeddings.FullContent)
}

// Cosine computes the cosine similarity of two vectors. The similarity of a
// zero vector (or mismatched empty input) against anything is defined as 0,
// so callers never divide by zero.
func Cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
