package rank

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/docsift/docsift/ai/mock"
	"github.com/docsift/docsift/core"
	"github.com/docsift/docsift/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker(t *testing.T, provider *mock.Provider) (*Ranker, *index.Index) {
	t.Helper()

	idx := index.NewIndex()
	indexer, err := index.NewIndexer(idx, provider)
	require.NoError(t, err)
	t.Cleanup(indexer.Release)

	ranker, err := NewRanker(idx, indexer, provider)
	require.NoError(t, err)
	return ranker, idx
}

func testCorpus() []*core.Section {
	return []*core.Section{
		{
			Title:    "Buttons",
			URL:      "https://developer.example.com/design/buttons",
			Platform: core.PlatformIOS,
			Category: core.CategoryComponents,
			Content:  "A button initiates an instantaneous action. Buttons have a label and can include an icon.",
			Structured: &core.StructuredContent{
				Overview:   "Buttons initiate app-specific actions.",
				Guidelines: []string{"Prefer system-provided button styles."},
				Examples:   []string{"Button(\"Done\") { dismiss() }"},
			},
			Quality:     &core.QualityMetrics{Score: 0.9},
			LastUpdated: time.Now().Add(-10 * 24 * time.Hour),
		},
		{
			Title:    "Navigation Bars",
			URL:      "https://developer.example.com/design/navigation-bars",
			Platform: core.PlatformIOS,
			Category: core.CategoryNavigation,
			Content:  "A navigation bar appears at the top of an app screen, enabling navigation through a hierarchy.",
			Quality:  &core.QualityMetrics{Score: 0.8},
		},
		{
			Title:    "Typography",
			URL:      "https://developer.example.com/design/typography",
			Platform: core.PlatformUniversal,
			Category: core.CategoryFoundations,
			Content:  "Typography conveys hierarchy and ensures legibility across platforms.",
			Quality:  &core.QualityMetrics{Score: 0.7},
		},
	}
}

func TestNewRanker(t *testing.T) {
	provider := mock.NewProvider()
	idx := index.NewIndex()
	indexer, err := index.NewIndexer(idx, provider)
	require.NoError(t, err)
	defer indexer.Release()

	t.Run("valid configuration", func(t *testing.T) {
		ranker, err := NewRanker(idx, indexer, provider)
		require.NoError(t, err)
		assert.NotNil(t, ranker)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewRanker(nil, indexer, provider)
		assert.Equal(t, ErrIndexRequired, err)
	})

	t.Run("nil indexer", func(t *testing.T) {
		_, err := NewRanker(idx, nil, provider)
		assert.Equal(t, ErrIndexerRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewRanker(idx, indexer, nil)
		assert.Equal(t, ErrProviderRequired, err)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		_, err := NewRanker(idx, indexer, provider, WithMinSemanticScore(1.5))
		assert.Equal(t, ErrInvalidThreshold, err)
	})
}

func TestSearch_TitleMatchRanksFirst(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	results, err := ranker.Search(context.Background(), "button", testCorpus(), core.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Buttons", results[0].Title)
	assert.Greater(t, results[0].KeywordScore, float32(0))
	assert.False(t, results[0].Degraded)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].CombinedScore, results[i].CombinedScore)
	}
}

func TestSearch_DegradedModeStillReturnsResults(t *testing.T) {
	provider := mock.NewUnavailableProvider()
	assert.Error(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	results, err := ranker.Search(context.Background(), "button", testCorpus(), core.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Buttons", results[0].Title)
	for _, result := range results {
		assert.True(t, result.Degraded)
		assert.Equal(t, float32(0), result.SemanticScore)
		assert.Greater(t, result.CombinedScore, float32(0))
	}
}

func TestSearch_PartialEmbedFailureKeepsSemanticSignal(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))

	// The Buttons body text fails to embed; its title and structured
	// slices still do, so the section keeps a semantic score and is not
	// reported as degraded.
	corpus := testCorpus()
	failing := corpus[0].Content
	provider.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if text == failing {
			return nil, assert.AnError
		}
		return mock.DeterministicVector(text, mock.Dimension), nil
	}

	ranker, _ := newTestRanker(t, provider)

	results, err := ranker.Search(context.Background(), "button", corpus, core.Filters{}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Buttons", results[0].Title)
	assert.False(t, results[0].Degraded)
	assert.Greater(t, results[0].SemanticScore, float32(0))
}

func TestSearch_PlatformFilter(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	corpus := testCorpus()
	corpus = append(corpus, &core.Section{
		Title:    "The Menu Bar",
		URL:      "https://developer.example.com/design/the-menu-bar",
		Platform: core.PlatformMacOS,
		Category: core.CategoryMenusAndActions,
		Content:  "The menu bar extends across the top of the main display.",
	})

	filters := core.Filters{Platform: core.PlatformIOS}
	results, err := ranker.Search(context.Background(), "screen layout", corpus, filters, 10)
	require.NoError(t, err)

	titles := make([]string, 0, len(results))
	for _, result := range results {
		titles = append(titles, result.Title)
	}
	assert.NotContains(t, titles, "The Menu Bar", "mismatched platform must be excluded")
	assert.Contains(t, titles, "Typography", "universal sections pass any platform filter")
}

func TestSearch_LazyIndexing(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, idx := newTestRanker(t, provider)

	corpus := testCorpus()
	require.Equal(t, 0, idx.Len())

	_, err := ranker.Search(context.Background(), "button", corpus, core.Filters{}, 10)
	require.NoError(t, err)
	assert.Equal(t, len(corpus), idx.Len())

	// Second search reuses the index instead of re-embedding.
	before := provider.CallCount()
	_, err = ranker.Search(context.Background(), "button", corpus, core.Filters{}, 10)
	require.NoError(t, err)
	assert.Equal(t, before+1, provider.CallCount(), "only the query should be embedded again")
}

func TestSearch_SkipsUnindexableSections(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	corpus := append(testCorpus(), &core.Section{
		Title:   "",
		Content: "orphaned content with no title",
	})

	results, err := ranker.Search(context.Background(), "button", corpus, core.Filters{}, 10)
	require.NoError(t, err)
	assert.Len(t, results, len(corpus)-1)
}

func TestSearch_InvalidQuery(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	t.Run("empty", func(t *testing.T) {
		_, err := ranker.Search(context.Background(), "", testCorpus(), core.Filters{}, 10)
		assert.True(t, errors.Is(err, core.ErrInvalidQuery))
	})

	t.Run("over length limit", func(t *testing.T) {
		_, err := ranker.Search(context.Background(), strings.Repeat("a", 600), testCorpus(), core.Filters{}, 10)
		assert.True(t, errors.Is(err, core.ErrInvalidQuery))
	})
}

func TestSearch_LimitTruncates(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	results, err := ranker.Search(context.Background(), "button", testCorpus(), core.Filters{}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Buttons", results[0].Title)
}

func TestSearch_RecencyBoost(t *testing.T) {
	provider := mock.NewUnavailableProvider()
	assert.Error(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	// Identical sections except for freshness; degraded provider keeps the
	// semantic signal out of the comparison.
	fresh := &core.Section{
		Title:       "Sliders",
		URL:         "https://developer.example.com/design/sliders-fresh",
		Platform:    core.PlatformIOS,
		Content:     "A slider selects a value from a continuous range.",
		LastUpdated: time.Now().Add(-7 * 24 * time.Hour),
	}
	stale := &core.Section{
		Title:       "Sliders",
		URL:         "https://developer.example.com/design/sliders-stale",
		Platform:    core.PlatformIOS,
		Content:     "A slider selects a value from a continuous range.",
		LastUpdated: time.Now().Add(-400 * 24 * time.Hour),
	}

	results, err := ranker.Search(context.Background(), "slider", []*core.Section{stale, fresh}, core.Filters{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, fresh.URL, results[0].URL)
	assert.InDelta(t, float64(results[1].CombinedScore)*1.2, float64(results[0].CombinedScore), 1e-5)
}

type recordingMonitor struct {
	started   bool
	analysis  *core.QueryAnalysis
	degraded  *bool
	skipped   []string
	scored    int
	finishLen int
}

func (m *recordingMonitor) Start(_ string)                      { m.started = true }
func (m *recordingMonitor) AfterAnalysis(a *core.QueryAnalysis) { m.analysis = a }
func (m *recordingMonitor) AfterQueryEmbedding(degraded bool)   { m.degraded = &degraded }
func (m *recordingMonitor) SectionSkipped(_ core.ID, title, _ string) {
	m.skipped = append(m.skipped, title)
}
func (m *recordingMonitor) SectionDiscarded(_ core.ID, _ float32) {}
func (m *recordingMonitor) SectionScored(_ *core.RankedResult)    { m.scored++ }
func (m *recordingMonitor) Finish(results []*core.RankedResult)   { m.finishLen = len(results) }

func TestSearchWithMonitor(t *testing.T) {
	provider := mock.NewProvider()
	require.NoError(t, provider.Load(context.Background()))
	ranker, _ := newTestRanker(t, provider)

	monitor := &recordingMonitor{}
	results, err := ranker.SearchWithMonitor(context.Background(), "button", testCorpus(), core.Filters{}, 10, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	require.NotNil(t, monitor.analysis)
	assert.Equal(t, core.IntentFindComponent, monitor.analysis.Intent)
	require.NotNil(t, monitor.degraded)
	assert.False(t, *monitor.degraded)
	assert.Equal(t, len(results), monitor.finishLen)
	assert.Equal(t, len(results), monitor.scored)
}
