// Copyright 2025 Docsift Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/docsift/docsift/ai"
)

// Dimension is the fixed vector length produced by the mock provider.
const Dimension = 384

// Provider is a test double for ai.EmbeddingProvider.
// It allows custom behavior injection via function fields.
type Provider struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// LoadFunc is called by Load if set. If nil, Load always succeeds.
	LoadFunc func(ctx context.Context) error

	mu        sync.Mutex
	loaded    bool
	failed    bool
	callCount int
}

var _ ai.EmbeddingProvider = (*Provider)(nil)

// NewProvider creates a mock provider with default deterministic behavior.
// Returns the concrete type so tests can inject behavior and read call counts.
func NewProvider() *Provider {
	return &Provider{}
}

// NewUnavailableProvider creates a mock provider whose Load always fails,
// putting it permanently into degraded mode.
func NewUnavailableProvider() *Provider {
	return &Provider{
		LoadFunc: func(ctx context.Context) error {
			return ai.ErrUnavailable
		},
	}
}

// Load marks the provider ready, or permanently unavailable when LoadFunc fails.
func (p *Provider) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failed {
		return ai.ErrUnavailable
	}
	if p.loaded {
		return nil
	}

	if p.LoadFunc != nil {
		if err := p.LoadFunc(ctx); err != nil {
			p.failed = true
			return err
		}
	}
	p.loaded = true
	return nil
}

// Ready reports whether Load succeeded.
func (p *Provider) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded && !p.failed
}

// Dimension returns the fixed mock vector length.
func (p *Provider) Dimension() int {
	return Dimension
}

// EmbedText generates a deterministic embedding based on text hash.
func (p *Provider) EmbedText(ctx context.Context, text string) ([]float32, error) {
	p.mu.Lock()
	p.callCount++
	ready := p.loaded && !p.failed
	p.mu.Unlock()

	if p.EmbedTextFunc != nil {
		return p.EmbedTextFunc(ctx, text)
	}
	if !ready {
		return nil, ai.ErrUnavailable
	}

	return DeterministicVector(text, Dimension), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (p *Provider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	p.mu.Lock()
	p.callCount++
	ready := p.loaded && !p.failed
	p.mu.Unlock()

	if p.EmbedTextsFunc != nil {
		return p.EmbedTextsFunc(ctx, texts)
	}
	if !ready {
		return nil, ai.ErrUnavailable
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = DeterministicVector(text, Dimension)
	}
	return embeddings, nil
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}

// CallCount returns the number of times any embedding method was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset clears the call count, injected behavior, and lifecycle state.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
	p.loaded = false
	p.failed = false
	p.EmbedTextFunc = nil
	p.EmbedTextsFunc = nil
	p.LoadFunc = nil
}

// DeterministicVector creates a deterministic embedding vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// LCG constants
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit vector
	var sumSquares float32
	for _, v := range vector {
		sumSquares += v * v
	}
	if sumSquares > 0 {
		norm := float32(1.0) / float32(sumSquares)
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
