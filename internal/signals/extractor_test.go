package signals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcore/internal/domain"
)

func result(title, snippet string) domain.SearchResult {
	return domain.SearchResult{Title: title, Snippet: snippet, Source: "test"}
}

func TestExtractEmptyInput(t *testing.T) {
	got := Extract(nil)

	assert.Equal(t, domain.BloomStatusUnknown, got.BloomStatus)
	assert.Equal(t, DefaultSeason, got.Season)
	assert.Equal(t, domain.AbundanceMedium, got.Abundance)
	assert.Equal(t, EmptySummary, got.Summary)
	assert.Equal(t, 0, got.SourceCount)
}

func TestExtractActiveStatus(t *testing.T) {
	got := Extract([]domain.SearchResult{
		result("Rhododendrons currently blooming across the valley", ""),
	})

	assert.Equal(t, domain.BloomStatusActive, got.BloomStatus)
	assert.Equal(t, 1, got.SourceCount)
}

func TestExtractStatusPriority(t *testing.T) {
	// Active keywords outrank upcoming ones when both are present.
	got := Extract([]domain.SearchResult{
		result("Tulips in full bloom, more expected to bloom next month", ""),
	})
	assert.Equal(t, domain.BloomStatusActive, got.BloomStatus)
}

func TestExtractStatusGroups(t *testing.T) {
	tests := []struct {
		text string
		want domain.BloomStatus
	}{
		{"buds are forming on the cherry trees", domain.BloomStatusUpcoming},
		{"the bloom has ended for this season", domain.BloomStatusPast},
		{"this region is too cold for lotus cultivation", domain.BloomStatusNotSuitable},
		{"a travel guide to the region", domain.BloomStatusUnknown},
	}

	for _, tt := range tests {
		got := Extract([]domain.SearchResult{result(tt.text, "")})
		assert.Equal(t, tt.want, got.BloomStatus, "text: %s", tt.text)
	}
}

func TestExtractSeasonMonthRange(t *testing.T) {
	got := Extract([]domain.SearchResult{
		result("Blooms run from May back through March in some years", ""),
	})

	// Range follows calendar order regardless of text order.
	assert.Equal(t, "March to May", got.Season)
}

func TestExtractSeasonSingleMonth(t *testing.T) {
	got := Extract([]domain.SearchResult{
		result("Expect flowers in April", ""),
	})
	assert.Equal(t, "April", got.Season)
}

func TestExtractSeasonKeywordFallback(t *testing.T) {
	got := Extract([]domain.SearchResult{
		result("A spectacular spring display", ""),
	})
	assert.Equal(t, "spring", got.Season)
}

func TestExtractAbundanceGroups(t *testing.T) {
	tests := []struct {
		text string
		want domain.AbundanceLevel
	}{
		{"a carpet of wildflowers covers the hills", domain.AbundanceHigh},
		{"only a few blossoms remain", domain.AbundanceLow},
		{"the slopes are devoid of flowers this year", domain.AbundanceNone},
		{"flowers were seen near the lake", domain.AbundanceMedium},
	}

	for _, tt := range tests {
		got := Extract([]domain.SearchResult{result(tt.text, "")})
		assert.Equal(t, tt.want, got.Abundance, "text: %s", tt.text)
	}
}

func TestAbundanceMatched(t *testing.T) {
	assert.True(t, AbundanceMatched([]domain.SearchResult{
		result("abundant blooms everywhere", ""),
	}))
	assert.False(t, AbundanceMatched([]domain.SearchResult{
		result("flowers were seen near the lake", ""),
	}))
	assert.False(t, AbundanceMatched(nil))
}

func TestSummarizeNumbersAndCaps(t *testing.T) {
	results := make([]domain.SearchResult, 0, 7)
	for i := 0; i < 7; i++ {
		results = append(results, domain.SearchResult{
			Title:   "Title",
			Snippet: "Snippet",
			Source:  "serpapi",
		})
	}

	summary := Summarize(results)
	lines := strings.Split(summary, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "1. [serpapi] Title: Snippet", lines[0])
	assert.Equal(t, "5. [serpapi] Title: Snippet", lines[4])
}

func TestSummarizeFillsMissingFields(t *testing.T) {
	summary := Summarize([]domain.SearchResult{{}})
	assert.Equal(t, "1. [Unknown] No title: No description", summary)
}

func TestExtractClassifiesTopTenOnly(t *testing.T) {
	results := make([]domain.SearchResult, 10)
	for i := range results {
		results[i] = result("nothing relevant here", "")
	}
	results = append(results, result("currently blooming", ""))

	got := Extract(results)
	assert.Equal(t, domain.BloomStatusUnknown, got.BloomStatus)
	assert.Equal(t, 11, got.SourceCount)
}
