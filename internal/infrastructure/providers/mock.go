package providers

import (
	"context"
	"fmt"
	"strings"

	"bloomcore/internal/domain"
	"bloomcore/internal/ports"
)

// MockGatherer serves deterministic canned results. It backs explicit
// mock-mode requests and substitutes for live search when no keyed provider
// is configured.
type MockGatherer struct{}

var _ ports.SearchGatherer = (*MockGatherer)(nil)

// NewMockGatherer creates the mock gatherer.
func NewMockGatherer() *MockGatherer { return &MockGatherer{} }

// Gather returns the same two results for a given region and flower.
func (m *MockGatherer) Gather(_ context.Context, region, flower string) []domain.SearchResult {
	title := titleCase(flower)
	return []domain.SearchResult{
		{
			Title:   fmt.Sprintf("%s Blooming Patterns in %s", title, region),
			Snippet: fmt.Sprintf("Recent studies show %s blooming patterns in %s are influenced by temperature and precipitation.", flower, region),
			Link:    "https://example.com/study1",
			Source:  "Mock SerpAPI",
		},
		{
			Title:   fmt.Sprintf("Climate Impact on %s Growth", title),
			Snippet: fmt.Sprintf("Climate change is affecting %s bloom timing in %s, with earlier flowering observed.", flower, region),
			Link:    "https://example.com/news1",
			Source:  "Mock NewsAPI",
		},
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
