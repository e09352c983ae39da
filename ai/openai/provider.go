package openai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/docsift/docsift/ai"
	"github.com/docsift/docsift/ratelimit"
)

// Provider implements ai.EmbeddingProvider using OpenAI-compatible embedding APIs.
//
// Load is guarded by sync.Once: the first failure marks the provider
// permanently unavailable for the process lifetime, and all subsequent
// embedding requests return ai.ErrUnavailable.
type Provider struct {
	config   *ai.Config
	limiter  *ratelimit.FixedWindow
	logger   *slog.Logger
	loadOnce sync.Once

	mu       sync.RWMutex
	embedder embeddings.Embedder
	failed   bool
}

var _ ai.EmbeddingProvider = (*Provider)(nil)

// NewProvider creates an embedding provider using the provided configuration.
// The provider starts unloaded; call Load before requesting embeddings.
//
// Returns ai.EmbeddingProvider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.EmbeddingProvider, error) {
	if config == nil {
		config = ai.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Provider{
		config:  config,
		limiter: ratelimit.PerMinute(config.RequestsPerMinute),
		logger:  slog.Default().With("component", "openai-embedder"),
	}, nil
}

// Load initializes the embedding client and issues a probe request under the
// configured timeout. On failure the provider is marked permanently
// unavailable; Load never retries.
func (p *Provider) Load(ctx context.Context) error {
	var loadErr error
	p.loadOnce.Do(func() {
		loadCtx, cancel := context.WithTimeout(ctx, p.config.LoadTimeout)
		defer cancel()

		client, err := openai.New(
			openai.WithBaseURL(p.config.Host),
			// Local OpenAI-compatible services don't require authentication.
			openai.WithToken("none"),
			openai.WithEmbeddingModel(p.config.Model),
		)
		if err != nil {
			loadErr = p.markFailed(err)
			return
		}

		embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
		if err != nil {
			loadErr = p.markFailed(err)
			return
		}

		// A probe embedding verifies the service is actually reachable;
		// client construction alone never touches the network.
		if _, err := embedder.EmbedQuery(loadCtx, "ping"); err != nil {
			loadErr = p.markFailed(err)
			return
		}

		p.mu.Lock()
		p.embedder = embedder
		p.mu.Unlock()
		p.logger.Info("embedding provider loaded", "host", p.config.Host, "model", p.config.Model)
	})

	if loadErr != nil {
		return loadErr
	}
	if !p.Ready() {
		return ai.ErrUnavailable
	}
	return nil
}

func (p *Provider) markFailed(cause error) error {
	p.mu.Lock()
	p.failed = true
	p.mu.Unlock()
	p.logger.Warn("embedding provider load failed, semantic scoring disabled",
		"host", p.config.Host, "err", cause)
	return fmt.Errorf("%w: %w", ai.ErrUnavailable, cause)
}

// Ready reports whether embeddings can currently be generated.
func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.embedder != nil && !p.failed
}

// Dimension returns the configured embedding vector length.
func (p *Provider) Dimension() int {
	return p.config.Dimension
}

// EmbedText generates a vector embedding for a single text string.
func (p *Provider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	embedder, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		p.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}
	if len(vectors) == 0 {
		p.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	embedder, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("generating embeddings for texts", "count", len(texts))

	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		p.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}

// acquire checks availability and waits for a rate-limit slot.
func (p *Provider) acquire(ctx context.Context) (embeddings.Embedder, error) {
	p.mu.RLock()
	embedder := p.embedder
	failed := p.failed
	p.mu.RUnlock()

	if failed {
		return nil, ai.ErrUnavailable
	}
	if embedder == nil {
		return nil, ai.ErrNotLoaded
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return embedder, nil
}

// Close releases the provider. The underlying HTTP client holds no
// long-lived resources, so this only prevents further use.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.embedder = nil
	p.failed = true
	return nil
}
