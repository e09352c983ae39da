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

// Package docsift ranks documentation sections against free-text queries by
// blending semantic similarity, keyword overlap, structural fit, and
// contextual relevance, with a glob-style pattern matcher and a design
// concept to technical symbol cross-reference mapper alongside.
package docsift

import (
	"context"
	"errors"
	"log/slog"

	"github.com/docsift/docsift/ai"
	"github.com/docsift/docsift/ai/openai"
	"github.com/docsift/docsift/analyze"
	"github.com/docsift/docsift/core"
	"github.com/docsift/docsift/crossref"
	"github.com/docsift/docsift/index"
	"github.com/docsift/docsift/rank"
	"github.com/docsift/docsift/storage"
	"github.com/docsift/docsift/storage/badger"
	"github.com/docsift/docsift/wildcard"
)

// MaxSearchLimit is the hard cap on results per search, regardless of the
// caller's limit.
const MaxSearchLimit = 50

// Engine is the top-level entry point. It owns the section store, the
// semantic index, and the ranking pipeline.
type Engine struct {
	backend  *badger.Backend
	sections storage.SectionRepository
	provider ai.EmbeddingProvider
	idx      *index.Index
	indexer  *index.Indexer
	ranker   *rank.Ranker
	analyzer *analyze.Analyzer
	mapper   *crossref.Mapper
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.EmbeddingProvider
	inMemory bool
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider substitutes a custom embedding provider, bypassing the
// OpenAI-compatible default. Mainly for tests.
func WithProvider(provider ai.EmbeddingProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps the section store in memory instead of on disk.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the section store at filePath and wires the ranking
// pipeline. Call Load before searching to bring the embedding provider up;
// searches work in degraded mode without it.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	sections, err := badger.NewSectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			sections.Close()
			backend.Close()
			return nil, err
		}
	}

	idx := index.NewIndex()
	indexer, err := index.NewIndexer(idx, provider)
	if err != nil {
		provider.Close()
		sections.Close()
		backend.Close()
		return nil, err
	}

	analyzer, err := analyze.NewAnalyzer()
	if err != nil {
		indexer.Release()
		provider.Close()
		sections.Close()
		backend.Close()
		return nil, err
	}

	ranker, err := rank.NewRanker(idx, indexer, provider, rank.WithAnalyzer(analyzer))
	if err != nil {
		indexer.Release()
		provider.Close()
		sections.Close()
		backend.Close()
		return nil, err
	}

	mapper, err := crossref.NewMapper()
	if err != nil {
		indexer.Release()
		provider.Close()
		sections.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:  backend,
		sections: sections,
		provider: provider,
		idx:      idx,
		indexer:  indexer,
		ranker:   ranker,
		analyzer: analyzer,
		mapper:   mapper,
		logger:   slog.Default(),
	}, nil
}

// Load brings the embedding provider up. An ai.ErrUnavailable result is
// informational, not fatal: the engine keeps working in degraded mode.
func (e *Engine) Load(ctx context.Context) error {
	if err := e.provider.Load(ctx); err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			e.logger.Warn("embedding provider unavailable, running degraded", "err", err)
		}
		return err
	}
	return nil
}

// Close releases the provider, the indexer pool, and the section store.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing embedding provider", "err", err)
	}
	e.indexer.Release()

	if err := e.sections.Close(); err != nil {
		e.logger.Error("error closing section repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Search ranks the given corpus against the query and returns up to limit
// results. A limit <= 0 means the ranker default; MaxSearchLimit is the hard
// ceiling either way.
func (e *Engine) Search(ctx context.Context, query string, corpus []*core.Section, filters core.Filters, limit int) ([]*core.RankedResult, error) {
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	return e.ranker.Search(ctx, query, corpus, filters, limit)
}

// SearchStored ranks the persisted corpus against the query. With a platform
// filter set, only that platform's sections plus universal ones are loaded.
func (e *Engine) SearchStored(ctx context.Context, query string, filters core.Filters, limit int) ([]*core.RankedResult, error) {
	corpus, err := e.storedCorpus(ctx, filters)
	if err != nil {
		return nil, err
	}
	return e.Search(ctx, query, corpus, filters, limit)
}

func (e *Engine) storedCorpus(ctx context.Context, filters core.Filters) ([]*core.Section, error) {
	if filters.Platform == core.PlatformUnknown {
		return e.sections.ListSections(ctx)
	}

	corpus, err := e.sections.ListSectionsByPlatform(ctx, filters.Platform)
	if err != nil {
		return nil, err
	}
	if filters.Platform != core.PlatformUniversal {
		universal, err := e.sections.ListSectionsByPlatform(ctx, core.PlatformUniversal)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, universal...)
	}
	return corpus, nil
}

// AnalyzeQuery exposes query analysis for diagnostics and testing.
func (e *Engine) AnalyzeQuery(query string, filters core.Filters) (*core.QueryAnalysis, error) {
	return e.analyzer.Analyze(query, filters)
}

// IndexSections persists sections and (re)builds their index entries.
// Idempotent per section id; a prior entry is replaced wholesale.
func (e *Engine) IndexSections(ctx context.Context, sections ...*core.Section) error {
	if err := e.sections.PutSections(ctx, sections...); err != nil {
		return err
	}
	return e.indexer.IndexSections(ctx, sections...)
}

// SectionFields are the section fields MatchWildcard can inspect.
var SectionFields = []string{"title", "url", "content"}

// SectionField extracts a named field from a section for wildcard matching.
func SectionField(section *core.Section, field string) string {
	switch field {
	case "title":
		return section.Title
	case "url":
		return section.URL
	case "content":
		return section.Content
	default:
		return ""
	}
}

// MatchWildcard matches sections against a glob-style pattern over the named
// fields (see SectionFields), returning matches sorted by score.
func (e *Engine) MatchWildcard(sections []*core.Section, pattern string, fields []string) ([]wildcard.Result[*core.Section], error) {
	if len(fields) == 0 {
		fields = SectionFields
	}
	return wildcard.Match(sections, pattern, fields, SectionField)
}

// GetComponentMapping returns the cross-reference table entry for a concept,
// or nil when the concept is unknown.
func (e *Engine) GetComponentMapping(concept string) *crossref.ComponentMapping {
	return e.mapper.GetComponentMapping(concept)
}

// FindCrossReferences maps a design title and optional technical symbol to
// confidence-ranked cross-references.
func (e *Engine) FindCrossReferences(designTitle, technicalSymbol string, platformHints ...string) []core.CrossReference {
	return e.mapper.FindCrossReferences(designTitle, technicalSymbol, platformHints...)
}

// Sections exposes the persisted corpus store.
func (e *Engine) Sections() storage.SectionRepository {
	return e.sections
}
