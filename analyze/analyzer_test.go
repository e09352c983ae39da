package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/docsift/core"
)

func TestNewAnalyzer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		analyzer, err := NewAnalyzer()
		require.NoError(t, err)
		assert.NotNil(t, analyzer)
	})

	t.Run("nil tokenizer rejected", func(t *testing.T) {
		_, err := NewAnalyzer(WithTokenizer(nil))
		assert.Equal(t, ErrTokenizerRequired, err)
	})

	t.Run("nil classifier rejected", func(t *testing.T) {
		_, err := NewAnalyzer(WithClassifier(nil))
		assert.Equal(t, ErrClassifierRequired, err)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		analyzer, err := NewAnalyzer(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, analyzer)
	})
}

func TestAnalyze_RejectsInvalidQueries(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	t.Run("empty query", func(t *testing.T) {
		_, err := analyzer.Analyze("", core.Filters{})
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("whitespace query", func(t *testing.T) {
		_, err := analyzer.Analyze("   ", core.Filters{})
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("over-long query", func(t *testing.T) {
		_, err := analyzer.Analyze(strings.Repeat("x", core.MaxQueryLength+1), core.Filters{})
		assert.ErrorIs(t, err, core.ErrInvalidQuery)
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := analyzer.Analyze("buttons", core.Filters{Platform: core.Platform(42)})
		assert.ErrorIs(t, err, core.ErrInvalidFilter)
	})
}

func TestAnalyze_IntentClassification(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	tests := []struct {
		query string
		want  core.Intent
	}{
		{query: "how to add a button", want: core.IntentFindExample},
		{query: "show me an example of a sheet", want: core.IntentFindExample},
		{query: "button best practice", want: core.IntentFindGuideline},
		{query: "toolbar guidelines", want: core.IntentFindGuideline},
		{query: "button size spec", want: core.IntentFindSpecification},
		{query: "minimum tap target dimensions", want: core.IntentFindSpecification},
		{query: "ios vs macos menus", want: core.IntentComparePlatforms},
		{query: "compare navigation on watch and phone", want: core.IntentComparePlatforms},
		{query: "button", want: core.IntentFindComponent},
		{query: "tell me about deference", want: core.IntentGeneralSearch},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			analysis, err := analyzer.Analyze(tt.query, core.Filters{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, analysis.Intent)
		})
	}
}

func TestAnalyze_Entities(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	analysis, err := analyzer.Analyze("navigation bar color on iOS", core.Filters{})
	require.NoError(t, err)

	byType := make(map[core.EntityType]core.EntityMatch)
	for _, entity := range analysis.Entities {
		byType[entity.Type] = entity
	}

	component, ok := byType[core.EntityComponent]
	require.True(t, ok, "expected a component entity")
	assert.Equal(t, "navigation bar", component.NormalizedValue)
	assert.InDelta(t, 0.8, component.Confidence, 1e-6)

	platform, ok := byType[core.EntityPlatform]
	require.True(t, ok, "expected a platform entity")
	assert.Equal(t, "iOS", platform.NormalizedValue)
	assert.InDelta(t, 0.9, platform.Confidence, 1e-6)

	property, ok := byType[core.EntityProperty]
	require.True(t, ok, "expected a property entity")
	assert.Equal(t, "color", property.NormalizedValue)
	assert.InDelta(t, 0.7, property.Confidence, 1e-6)
}

func TestAnalyze_LongestPhraseWins(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	analysis, err := analyzer.Analyze("tab bar icons", core.Filters{})
	require.NoError(t, err)

	var values []string
	for _, entity := range analysis.Entities {
		if entity.Type == core.EntityComponent {
			values = append(values, entity.NormalizedValue)
		}
	}
	assert.Contains(t, values, "tab bar")
}

func TestAnalyze_Keywords(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	analysis, err := analyzer.Analyze("How to use the button on an iOS app, the button!", core.Filters{})
	require.NoError(t, err)

	// Stop words and tokens of length <= 2 are dropped; duplicates collapse.
	assert.Equal(t, []string{"button", "ios", "app"}, analysis.Keywords)
}

func TestAnalyze_Concepts(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	analysis, err := analyzer.Analyze("accessibility of navigation gestures", core.Filters{})
	require.NoError(t, err)

	assert.Contains(t, analysis.Concepts, "accessibility")
	assert.Contains(t, analysis.Concepts, "navigation")
	assert.Contains(t, analysis.Concepts, "gesture")
}

func TestAnalyze_PlatformResolution(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	t.Run("explicit filter wins over entity", func(t *testing.T) {
		analysis, err := analyzer.Analyze("buttons on ios", core.Filters{Platform: core.PlatformMacOS})
		require.NoError(t, err)
		assert.Equal(t, core.PlatformMacOS, analysis.Platform)
	})

	t.Run("inferred from entity", func(t *testing.T) {
		analysis, err := analyzer.Analyze("buttons on the apple watch", core.Filters{})
		require.NoError(t, err)
		assert.Equal(t, core.PlatformWatchOS, analysis.Platform)
	})

	t.Run("left unset", func(t *testing.T) {
		analysis, err := analyzer.Analyze("buttons", core.Filters{})
		require.NoError(t, err)
		assert.Equal(t, core.PlatformUnknown, analysis.Platform)
	})
}

func TestAnalyze_CategoryResolution(t *testing.T) {
	analyzer, err := NewAnalyzer()
	require.NoError(t, err)

	t.Run("explicit filter wins", func(t *testing.T) {
		analysis, err := analyzer.Analyze("buttons", core.Filters{Category: core.CategoryVisualDesign})
		require.NoError(t, err)
		assert.Equal(t, core.CategoryVisualDesign, analysis.Category)
	})

	t.Run("navigation concept infers navigation", func(t *testing.T) {
		analysis, err := analyzer.Analyze("navigation patterns", core.Filters{})
		require.NoError(t, err)
		assert.Equal(t, core.CategoryNavigation, analysis.Category)
	})

	t.Run("component entity infers components", func(t *testing.T) {
		analysis, err := analyzer.Analyze("slider", core.Filters{})
		require.NoError(t, err)
		assert.Equal(t, core.CategoryComponents, analysis.Category)
	})

	t.Run("left unset", func(t *testing.T) {
		analysis, err := analyzer.Analyze("deference", core.Filters{})
		require.NoError(t, err)
		assert.Equal(t, core.CategoryUnknown, analysis.Category)
	})
}

func TestIntentClassifier_VsTokenBoundary(t *testing.T) {
	classifier := NewIntentClassifier()

	// "divs" contains "vs" as a substring but is not a comparison.
	intent := classifier.Classify("styling divs", nil)
	assert.NotEqual(t, core.IntentComparePlatforms, intent)

	intent = classifier.Classify("tab bar vs toolbar", nil)
	assert.Equal(t, core.IntentComparePlatforms, intent)
}
