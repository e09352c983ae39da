package index

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/ai/mock"
	"github.com/docsift/docsift/core"
)

func testSection(title, content string) *core.Section {
	return &core.Section{
		Title:       title,
		URL:         "https://developer.example.com/design/" + title,
		Platform:    core.PlatformIOS,
		Category:    core.CategoryComponents,
		Content:     content,
		LastUpdated: time.Now().Add(-time.Hour),
	}
}

func TestNewIndexer(t *testing.T) {
	idx := NewIndex()
	provider := mock.NewProvider()

	t.Run("valid configuration", func(t *testing.T) {
		indexer, err := NewIndexer(idx, provider)
		require.NoError(t, err)
		defer indexer.Release()
		assert.NotNil(t, indexer)
	})

	t.Run("with pool size", func(t *testing.T) {
		indexer, err := NewIndexer(idx, provider, WithPoolSize(4))
		require.NoError(t, err)
		defer indexer.Release()
		assert.NotNil(t, indexer)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewIndexer(nil, provider)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewIndexer(idx, nil)
		assert.Equal(t, ErrProviderRequired, err)
	})
}

func TestIndexSection(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(ctx))

	indexer, err := NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	section := testSection("Buttons", "Buttons initiate app-specific actions.")
	section.Structured = &core.StructuredContent{
		Overview:   "Buttons trigger actions.",
		Guidelines: []string{"Use verbs in titles.", "Prefer system styles."},
	}

	require.NoError(t, indexer.IndexSection(ctx, section))

	entry, ok := idx.Get(core.SectionID(section))
	require.True(t, ok)
	assert.False(t, entry.Degraded)
	assert.Len(t, entry.Embeddings.Title, mock.Dimension)
	assert.Len(t, entry.Embeddings.Overview, mock.Dimension)
	assert.Len(t, entry.Embeddings.Guidelines, mock.Dimension)
	assert.Len(t, entry.Embeddings.FullContent, mock.Dimension)
	assert.Equal(t, core.PlatformIOS, entry.Metadata.Platform)
}

func TestIndexSection_InvalidSection(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(ctx))

	indexer, err := NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	err = indexer.IndexSection(ctx, &core.Section{Title: "", Content: "body"})
	assert.ErrorIs(t, err, core.ErrInvalidSection)
	assert.Zero(t, idx.Len())
}

func TestIndexSection_Idempotent(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(ctx))

	indexer, err := NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	section := testSection("Buttons", "Buttons initiate actions.")

	require.NoError(t, indexer.IndexSection(ctx, section))
	require.NoError(t, indexer.IndexSection(ctx, section))

	assert.Equal(t, 1, idx.Len())
}

func TestIndexSection_ProviderUnavailable(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewUnavailableProvider()
	_ = provider.Load(ctx) // marks the provider permanently unavailable

	indexer, err := NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	section := testSection("Buttons", "Buttons initiate actions.")
	require.NoError(t, indexer.IndexSection(ctx, section))

	// The entry is still created, zero-filled and flagged.
	entry, ok := idx.Get(core.SectionID(section))
	require.True(t, ok)
	assert.True(t, entry.Degraded)
	assert.Len(t, entry.Embeddings.Title, mock.Dimension)
	assert.Zero(t, entry.Similarity(mock.DeterministicVector("buttons", mock.Dimension)))
}

func TestIndexSection_PartialEmbedFailureKeepsGoodSlices(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(ctx))

	// Only the full-content embedding fails; the title slice still embeds.
	content := "Buttons initiate actions."
	provider.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == content {
			return nil, assert.AnError
		}
		return mock.DeterministicVector(text, mock.Dimension), nil
	}

	indexer, err := NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	section := testSection("Buttons", content)
	require.NoError(t, indexer.IndexSection(ctx, section))

	entry, ok := idx.Get(core.SectionID(section))
	require.True(t, ok)
	assert.False(t, entry.Degraded)

	// Against a query vector identical to the title embedding, the title
	// slice cosines to 1 and carries its full weight; the zeroed content
	// slice contributes nothing instead of wiping the score.
	query := mock.DeterministicVector("Buttons", mock.Dimension)
	assert.InDelta(t, 0.4, entry.Similarity(query), 1e-6)
}

func TestIndexSection_AllEmbedsFail(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(ctx))

	provider.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}

	indexer, err := NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	section := testSection("Buttons", "Buttons initiate actions.")
	require.NoError(t, indexer.IndexSection(ctx, section))

	entry, ok := idx.Get(core.SectionID(section))
	require.True(t, ok)
	assert.True(t, entry.Degraded)
	assert.Zero(t, entry.Similarity(mock.DeterministicVector("buttons", mock.Dimension)))
}

func TestIndexSections_Concurrent(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex()
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(ctx))

	indexer, err := NewIndexer(idx, provider, WithPoolSize(4))
	require.NoError(t, err)
	defer indexer.Release()

	sections := []*core.Section{
		testSection("Buttons", "Buttons initiate actions."),
		testSection("Sliders", "Sliders select from a range."),
		testSection("Toggles", "Toggles switch between states."),
		testSection("Pickers", "Pickers present mutually exclusive choices."),
	}

	require.NoError(t, indexer.IndexSections(ctx, sections...))
	assert.Equal(t, 4, idx.Len())
}

func TestIndex_PutReplaces(t *testing.T) {
	idx := NewIndex()

	first := &Entry{SectionId: 7, Degraded: true}
	second := &Entry{SectionId: 7, Degraded: false}

	idx.Put(first)
	idx.Put(second)

	assert.Equal(t, 1, idx.Len())
	entry, ok := idx.Get(7)
	require.True(t, ok)
	assert.False(t, entry.Degraded)
}

func TestIndex_Remove(t *testing.T) {
	idx := NewIndex()
	idx.Put(&Entry{SectionId: 1})
	idx.Remove(1)
	assert.False(t, idx.Has(1))
}
