package index

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/docsift/docsift/ai"
	"github.com/docsift/docsift/analyze"
	"github.com/docsift/docsift/core"
)

// Indexer builds semantic index entries from sections.
//
// Indexing is the only potentially slow phase (one embedding request per
// text slice). Distinct sections are indexed concurrently on a bounded
// worker pool; a section's four slice embeddings are issued concurrently
// and must all complete, or fail over to zero vectors, before the entry
// is published. No entry is made partially visible.
type Indexer struct {
	index    *Index
	provider ai.EmbeddingProvider
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithPoolSize sets the worker pool size for concurrent section indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ix *Indexer) error {
		if size < 1 {
			size = 1
		}
		if ix.pool != nil {
			ix.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ix.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates an indexer writing into index using provider.
func NewIndexer(index *Index, provider ai.EmbeddingProvider, opts ...Option) (*Indexer, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		index:    index,
		provider: provider,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(ix); optErr != nil {
			ix.Release()
			return nil, optErr
		}
	}
	ix.logger = ix.logger.With("component", "indexer")

	return ix, nil
}

// IndexSection builds and publishes the entry for one section.
// Idempotent per section id: a second call replaces the prior entry.
// Provider failures degrade the affected vectors to zero rather than
// failing the call; only context cancellation aborts.
func (ix *Indexer) IndexSection(ctx context.Context, section *core.Section) error {
	if err := core.ValidateSection(section); err != nil {
		return err
	}

	entry, err := ix.buildEntry(ctx, section)
	if err != nil {
		return err
	}
	ix.index.Put(entry)

	ix.logger.Debug("indexed section",
		"id", entry.SectionId,
		"title", section.Title,
		"degraded", entry.Degraded)
	return nil
}

// IndexSections indexes a batch of sections concurrently on the worker pool
// and blocks until all have been published or failed. The first error is
// returned, but remaining sections are still processed.
func (ix *Indexer) IndexSections(ctx context.Context, sections ...*core.Section) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, section := range sections {
		section := section
		wg.Add(1)
		submitErr := ix.pool.Submit(func() {
			defer wg.Done()
			if err := ix.IndexSection(ctx, section); err != nil {
				ix.logger.Error("error indexing section", "title", section.Title, "err", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()
	return firstErr
}

// buildEntry embeds the four text slices concurrently. All four must settle
// before the entry exists; any slice the provider cannot embed becomes a
// zero vector. The entry is marked degraded only when no slice embedded,
// so partial failures still leave a usable semantic signal.
func (ix *Indexer) buildEntry(ctx context.Context, section *core.Section) (*Entry, error) {
	slices := sectionSlices(section)
	dim := ix.provider.Dimension()

	vectors := make([][]float32, len(slices))
	embedded := false
	var mu sync.Mutex

	if ix.provider.Ready() {
		g, gctx := errgroup.WithContext(ctx)
		for i, text := range slices {
			i, text := i, text
			g.Go(func() error {
				if text == "" {
					mu.Lock()
					vectors[i] = make([]float32, dim)
					mu.Unlock()
					return nil
				}
				vec, err := ix.provider.EmbedText(gctx, text)
				if err != nil {
					if gctx.Err() != nil {
						return gctx.Err()
					}
					ix.logger.Warn("embedding failed, storing zero vector", "slice", i, "err", err)
					mu.Lock()
					vectors[i] = make([]float32, dim)
					mu.Unlock()
					return nil
				}
				mu.Lock()
				vectors[i] = vec
				embedded = true
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		// Provider unavailable: entries are still created, carrying zero
		// vectors and the degraded flag.
		for i := range vectors {
			vectors[i] = make([]float32, dim)
		}
	}

	quality := section.Quality.EffectiveScore()

	return &Entry{
		SectionId: core.SectionID(section),
		Embeddings: EmbeddingSet{
			Title:       vectors[0],
			Overview:    vectors[1],
			Guidelines:  vectors[2],
			FullContent: vectors[3],
		},
		Metadata: Metadata{
			Platform:     section.Platform,
			Category:     section.Category,
			Concepts:     analyze.Concepts(section.Title + " " + section.Content),
			QualityScore: quality,
			LastUpdated:  section.LastUpdated,
		},
		Degraded: !embedded,
	}, nil
}

// sectionSlices returns the four text slices in embedding order:
// title, overview, concatenated guidelines, full content.
func sectionSlices(section *core.Section) [4]string {
	var overview, guidelines string
	if section.Structured != nil {
		overview = section.Structured.Overview
		guidelines = strings.Join(section.Structured.Guidelines, "\n")
	}
	return [4]string{section.Title, overview, guidelines, section.Content}
}

// Release shuts down the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	if ix.pool != nil {
		ix.pool.Release()
	}
}
