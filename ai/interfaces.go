package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity scoring.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns ErrUnavailable when the provider is not loaded or has been
	// marked permanently unavailable.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingProvider aggregates an embedding service with its lifecycle.
//
// Load is a one-time, process-lifetime operation: on timeout or failure the
// provider is marked permanently unavailable and every subsequent embedding
// request returns ErrUnavailable. Consumers treat that as a documented
// degradation, never as a retryable error.
type EmbeddingProvider interface {
	Embedder

	// Load initializes the underlying model or connection.
	// Safe to call more than once; only the first call does work.
	Load(ctx context.Context) error

	// Ready reports whether embeddings can currently be generated.
	Ready() bool

	// Dimension returns the fixed length of vectors produced by this provider.
	// Callers use it to build zero vectors for degraded index entries.
	Dimension() int

	// Close releases resources held by the provider.
	// After Close is called, the provider should not be used.
	Close() error
}
