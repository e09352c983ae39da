// Package mock provides a test double implementation of ai.EmbeddingProvider.
//
// The mock allows tests to run without an external embedding service and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewProvider()
//	require.NoError(t, provider.Load(ctx))
//	vector, err := provider.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	provider.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Degraded-mode testing
//	provider := mock.NewUnavailableProvider()
//	_ = provider.Load(ctx) // fails; provider stays permanently unavailable
//
// Default embeddings are deterministic vectors derived from a hash of the
// input text, so identical text always embeds identically within a test run.
package mock
