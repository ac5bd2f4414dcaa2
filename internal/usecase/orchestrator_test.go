package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcore/internal/domain"
	"bloomcore/internal/geo"
	"bloomcore/internal/infrastructure/providers"
	"bloomcore/internal/synthesis"
)

type stalledGeocodeClient struct {
	delay time.Duration
}

func (c *stalledGeocodeClient) Lookup(ctx context.Context, _, _ string) ([2]float64, error) {
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return [2]float64{}, ctx.Err()
	}
	return [2]float64{10, 20}, nil
}

type stubGatherer struct {
	results []domain.SearchResult
	delay   time.Duration
}

func (s *stubGatherer) Gather(ctx context.Context, _, _ string) []domain.SearchResult {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil
		}
	}
	return s.results
}

type stubEngine struct {
	text    string
	llmUsed bool
}

func (s *stubEngine) Explain(_ context.Context, bc domain.BloomContext, _ string) (string, bool) {
	if s.text == "" {
		return synthesis.FallbackExplanation(bc), false
	}
	return s.text, s.llmUsed
}

func newTestOrchestrator(live *stubGatherer, hasLive bool) *Orchestrator {
	return NewOrchestrator(
		live,
		providers.NewMockGatherer(),
		&stubEngine{},
		nil,
		hasLive,
		2*time.Second,
		0.7,
		nil,
		nil,
	)
}

func TestOrchestrateValidation(t *testing.T) {
	o := newTestOrchestrator(&stubGatherer{}, false)

	_, err := o.Orchestrate(context.Background(), Request{Flower: "tulip"})
	assert.Error(t, err)

	_, err = o.Orchestrate(context.Background(), Request{Region: "Kashmir Valley"})
	assert.Error(t, err)

	bad := 1.5
	_, err = o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip", VegetationScore: &bad,
	})
	assert.Error(t, err)
}

func TestOrchestrateMockSubstitutionDegrades(t *testing.T) {
	// Auto mode with no live provider falls back to mock search.
	o := newTestOrchestrator(&stubGatherer{}, false)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip",
	})
	require.NoError(t, err)

	assert.True(t, resp.Metadata.Degraded)
	assert.True(t, resp.Metadata.SearchAvailable)
	assert.Equal(t, 2, resp.WebResearch.SourceCount)
	assert.NotEmpty(t, resp.Explanation)
	assert.NotEmpty(t, resp.Metadata.RequestID)
	assert.Len(t, resp.Factors, 6)
}

func TestOrchestrateExplicitMockNotDegraded(t *testing.T) {
	o := newTestOrchestrator(&stubGatherer{}, true)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip", Mode: domain.SearchModeMock,
	})
	require.NoError(t, err)

	assert.False(t, resp.Metadata.Degraded)
	assert.Equal(t, "Mock SerpAPI", resp.WebResearch.Sources[0].Source)
}

func TestOrchestrateSearchSignalsOverrideContext(t *testing.T) {
	live := &stubGatherer{results: []domain.SearchResult{
		{Title: "Tulips currently blooming in April", Snippet: "abundant fields", Link: "https://example.com/a", Source: "SerpAPI"},
	}}
	o := newTestOrchestrator(live, true)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip",
	})
	require.NoError(t, err)

	assert.False(t, resp.Metadata.Degraded)
	assert.Equal(t, domain.AbundanceHigh, resp.AbundanceLevel)
	assert.Equal(t, "April", resp.Season)
	assert.Equal(t, "April", resp.KnownBloomPeriod)
}

func TestOrchestrateAbundanceFromStatus(t *testing.T) {
	tests := []struct {
		snippet string
		want    domain.AbundanceLevel
	}{
		{"tulips currently blooming here", domain.AbundanceHigh},
		{"buds are forming across the valley", domain.AbundanceMedium},
		{"the bloom has ended for the year", domain.AbundanceLow},
		{"this area is too cold for tulips", domain.AbundanceNone},
		{"a generic travel report", domain.AbundanceMedium},
	}

	for _, tt := range tests {
		live := &stubGatherer{results: []domain.SearchResult{
			{Title: "Report", Snippet: tt.snippet, Link: "https://example.com/r"},
		}}
		o := newTestOrchestrator(live, true)

		resp, err := o.Orchestrate(context.Background(), Request{
			Region: "Kashmir Valley", Flower: "tulip",
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.AbundanceLevel, "snippet: %s", tt.snippet)
	}
}

func TestOrchestrateEmptyLiveSearchDegrades(t *testing.T) {
	o := newTestOrchestrator(&stubGatherer{}, true)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip",
	})
	require.NoError(t, err)

	assert.True(t, resp.Metadata.Degraded)
	assert.False(t, resp.Metadata.SearchAvailable)
	assert.Equal(t, "Web search temporarily unavailable", resp.WebResearch.Summary)
	// Context-derived fields still populate the response.
	assert.Equal(t, "Tulipa", resp.Flower.ScientificName)
	assert.Equal(t, domain.AbundanceHigh, resp.AbundanceLevel)
	assert.NotEmpty(t, resp.Explanation)
}

func TestOrchestrateTimeout(t *testing.T) {
	live := &stubGatherer{delay: 5 * time.Second}
	o := NewOrchestrator(
		live, providers.NewMockGatherer(), &stubEngine{}, nil,
		true, 100*time.Millisecond, 0.7, nil, nil,
	)

	start := time.Now()
	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip",
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, time.Second)
	assert.True(t, resp.Metadata.Degraded)
	assert.Equal(t, "Timeout", resp.Metadata.Error)
	assert.Len(t, resp.Factors, 3)
	assert.NotEmpty(t, resp.Explanation)
	assert.Equal(t, "Tulipa", resp.Flower.ScientificName)
	assert.Equal(t, "Search unavailable", resp.WebResearch.Summary)
}

func TestOrchestrateContextBuildStaysLocal(t *testing.T) {
	// A stalled remote geocoder must not delay context assembly. Coordinate
	// lookup in this pipeline consults local data only, so a region the
	// dataset does not know simply goes uncoordinated.
	resolver := geo.NewResolver(&stalledGeocodeClient{delay: 2 * time.Second}, 8, nil)
	live := &stubGatherer{results: []domain.SearchResult{
		{Title: "Report", Snippet: "tulips flowering", Link: "https://example.com/r"},
	}}
	o := NewOrchestrator(
		live, providers.NewMockGatherer(), &stubEngine{}, resolver,
		true, 300*time.Millisecond, 0.7, nil, nil,
	)

	start := time.Now()
	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Atlantis Lowlands", Flower: "tulip",
	})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Less(t, elapsed, time.Second)
	assert.False(t, resp.Metadata.Degraded)
	assert.Empty(t, resp.Metadata.Error)
	assert.True(t, resp.Metadata.SearchAvailable)
}

func TestOrchestrateSourcesCappedAtThree(t *testing.T) {
	var results []domain.SearchResult
	for i := 0; i < 5; i++ {
		results = append(results, domain.SearchResult{
			Title: "Report", Snippet: "news", Link: "https://example.com/" + string(rune('a'+i)),
		})
	}
	o := newTestOrchestrator(&stubGatherer{results: results}, true)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.WebResearch.SourceCount)
	assert.Len(t, resp.WebResearch.Sources, 3)
}

func TestOrchestrateDefaultVegetationScore(t *testing.T) {
	o := newTestOrchestrator(&stubGatherer{}, false)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kashmir Valley", Flower: "tulip",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, resp.VegetationScore, 1e-9)
}

func TestOrchestrateCompatibilityWarningInExplanation(t *testing.T) {
	o := newTestOrchestrator(&stubGatherer{}, false)

	resp, err := o.Orchestrate(context.Background(), Request{
		Region: "Kerala, India", Flower: "tulip", Mode: domain.SearchModeMock,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Explanation, "tropical climate")
}
