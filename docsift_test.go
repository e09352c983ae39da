package docsift

import (
	"context"
	"testing"

	"github.com/docsift/docsift/ai/mock"
	"github.com/docsift/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, provider *mock.Provider) *Engine {
	t.Helper()
	engine, err := NewEngine("", WithInMemoryStorage(), WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func seedCorpus() []*core.Section {
	return []*core.Section{
		{
			Title:    "Buttons",
			URL:      "https://developer.example.com/design/buttons",
			Platform: core.PlatformIOS,
			Category: core.CategoryComponents,
			Content:  "A button initiates an instantaneous action.",
		},
		{
			Title:    "Navigation Bars",
			URL:      "https://developer.example.com/design/navigation-bars",
			Platform: core.PlatformIOS,
			Category: core.CategoryNavigation,
			Content:  "A navigation bar appears at the top of an app screen.",
		},
		{
			Title:    "Accessibility",
			URL:      "https://developer.example.com/design/accessibility",
			Platform: core.PlatformUniversal,
			Category: core.CategoryFoundations,
			Content:  "Accessible apps support everyone, including people using assistive technologies.",
			Structured: &core.StructuredContent{
				Overview:   "Design for accessibility from the start.",
				Guidelines: []string{"Support Dynamic Type.", "Provide VoiceOver labels."},
			},
		},
	}
}

func TestEngine_SearchEndToEnd(t *testing.T) {
	provider := mock.NewProvider()
	engine := newTestEngine(t, provider)
	ctx := context.Background()
	require.NoError(t, engine.Load(ctx))

	results, err := engine.Search(ctx, "button", seedCorpus(), core.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Buttons", results[0].Title)
}

func TestEngine_SearchStored(t *testing.T) {
	provider := mock.NewProvider()
	engine := newTestEngine(t, provider)
	ctx := context.Background()
	require.NoError(t, engine.Load(ctx))
	require.NoError(t, engine.IndexSections(ctx, seedCorpus()...))

	t.Run("whole corpus", func(t *testing.T) {
		results, err := engine.SearchStored(ctx, "navigation", core.Filters{}, 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "Navigation Bars", results[0].Title)
	})

	t.Run("platform filter loads universal sections too", func(t *testing.T) {
		filters := core.Filters{Platform: core.PlatformIOS}
		results, err := engine.SearchStored(ctx, "accessibility", filters, 10)
		require.NoError(t, err)

		titles := make([]string, 0, len(results))
		for _, result := range results {
			titles = append(titles, result.Title)
		}
		assert.Contains(t, titles, "Accessibility")
	})
}

func TestEngine_DegradedSearchStillWorks(t *testing.T) {
	provider := mock.NewUnavailableProvider()
	engine := newTestEngine(t, provider)
	ctx := context.Background()
	assert.Error(t, engine.Load(ctx))

	results, err := engine.Search(ctx, "accessibility", seedCorpus(), core.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Accessibility", results[0].Title)
	for _, result := range results {
		assert.True(t, result.Degraded)
	}
}

func TestEngine_AnalyzeQuery(t *testing.T) {
	engine := newTestEngine(t, mock.NewProvider())

	analysis, err := engine.AnalyzeQuery("how to add a button on iOS", core.Filters{})
	require.NoError(t, err)
	assert.Equal(t, core.IntentFindExample, analysis.Intent)
	assert.Equal(t, core.PlatformIOS, analysis.Platform)
}

func TestEngine_MatchWildcard(t *testing.T) {
	engine := newTestEngine(t, mock.NewProvider())

	corpus := seedCorpus()
	results, err := engine.MatchWildcard(corpus, "*bars", []string{"title"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Navigation Bars", results[0].Item.Title)

	t.Run("default fields", func(t *testing.T) {
		results, err := engine.MatchWildcard(corpus, "button", nil)
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})
}

func TestEngine_CrossReferences(t *testing.T) {
	engine := newTestEngine(t, mock.NewProvider())

	mapping := engine.GetComponentMapping("button")
	require.NotNil(t, mapping)
	assert.Equal(t, "UIButton", mapping.Candidates[0].Symbol)

	refs := engine.FindCrossReferences("Buttons", "UIButton", "iOS")
	require.NotEmpty(t, refs)
	assert.Equal(t, "UIButton", refs[0].TechnicalSymbol)
}

func TestEngine_SearchLimitHardCap(t *testing.T) {
	provider := mock.NewProvider()
	engine := newTestEngine(t, provider)
	ctx := context.Background()
	require.NoError(t, engine.Load(ctx))

	results, err := engine.Search(ctx, "button", seedCorpus(), core.Filters{}, MaxSearchLimit+100)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), MaxSearchLimit)
}
