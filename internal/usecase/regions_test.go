package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloomcore/internal/domain"
	"bloomcore/internal/geo"
	"bloomcore/internal/regions"
)

func TestTopRegionsValidation(t *testing.T) {
	f := NewRegionFinder(&stubGatherer{}, regions.NewRanker(), nil, time.Second, nil)

	_, err := f.TopRegions(context.Background(), "", "lotus")
	assert.Error(t, err)

	_, err = f.TopRegions(context.Background(), "India", " ")
	assert.Error(t, err)
}

func TestTopRegionsRanksAndEnriches(t *testing.T) {
	gatherer := &stubGatherer{results: []domain.SearchResult{
		{Snippet: "Tulip gardens in Kashmir Valley are famous."},
		{Snippet: "Festivals in Kashmir Valley draw crowds."},
		{Snippet: "Beds in Srinagar opened early."},
	}}
	f := NewRegionFinder(gatherer, regions.NewRanker(), geo.NewResolver(nil, 8, nil), time.Second, nil)

	result, err := f.TopRegions(context.Background(), "India", "tulip")
	require.NoError(t, err)

	assert.Equal(t, "India", result.Country)
	assert.Equal(t, "tulip", result.Flower)
	assert.Equal(t, regions.MethodTextAnalysis, result.ExtractionMethod)
	assert.Equal(t, 3, result.TotalSources)

	require.NotEmpty(t, result.Regions)
	top := result.Regions[0]
	assert.Equal(t, "Kashmir Valley", top.Name)
	require.NotNil(t, top.Coordinates)
	assert.Equal(t, [2]float64{74.8, 34.1}, *top.Coordinates)
	assert.False(t, top.NeedsGeocoding)
}

func TestTopRegionsCountryFallback(t *testing.T) {
	f := NewRegionFinder(&stubGatherer{}, regions.NewRanker(), geo.NewResolver(nil, 8, nil), time.Second, nil)

	result, err := f.TopRegions(context.Background(), "India", "lotus")
	require.NoError(t, err)

	assert.Equal(t, regions.MethodCountryFallback, result.ExtractionMethod)
	require.Len(t, result.Regions, 1)
	assert.Equal(t, "India", result.Regions[0].Name)
	// Country fallback still resolves to the country center.
	require.NotNil(t, result.Regions[0].Coordinates)
	assert.Equal(t, [2]float64{78.0, 22.0}, *result.Regions[0].Coordinates)
}

func TestTopRegionsWithoutEnricher(t *testing.T) {
	gatherer := &stubGatherer{results: []domain.SearchResult{
		{Snippet: "Lotus ponds in Kerala are at their peak."},
	}}
	f := NewRegionFinder(gatherer, regions.NewRanker(), nil, time.Second, nil)

	result, err := f.TopRegions(context.Background(), "India", "lotus")
	require.NoError(t, err)

	require.NotEmpty(t, result.Regions)
	assert.Nil(t, result.Regions[0].Coordinates)
	assert.True(t, result.Regions[0].NeedsGeocoding)
}
