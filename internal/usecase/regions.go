package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bloomcore/internal/domain"
	"bloomcore/internal/ports"
	"bloomcore/internal/regions"
)

// RegionFinder ranks the regions inside a country where a flower is most
// reported.
type RegionFinder struct {
	gatherer ports.SearchGatherer
	ranker   *regions.Ranker
	enricher ports.RegionEnricher
	timeout  time.Duration
	logger   *slog.Logger
}

// NewRegionFinder wires the region-ranking pipeline. enricher may be nil;
// candidates then keep NeedsGeocoding set.
func NewRegionFinder(
	gatherer ports.SearchGatherer,
	ranker *regions.Ranker,
	enricher ports.RegionEnricher,
	timeout time.Duration,
	logger *slog.Logger,
) *RegionFinder {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RegionFinder{
		gatherer: gatherer,
		ranker:   ranker,
		enricher: enricher,
		timeout:  timeout,
		logger:   logger,
	}
}

// TopRegions searches for a flower within a country, extracts region names
// from the results, and returns up to five ranked candidates with
// coordinates filled in where resolvable.
func (f *RegionFinder) TopRegions(ctx context.Context, country, flower string) (domain.TopRegionsResult, error) {
	country = strings.TrimSpace(country)
	flower = strings.TrimSpace(flower)
	if country == "" {
		return domain.TopRegionsResult{}, fmt.Errorf("country is required")
	}
	if flower == "" {
		return domain.TopRegionsResult{}, fmt.Errorf("flower is required")
	}

	f.logger.Info("searching top regions", "country", country, "flower", flower)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	results := f.gatherer.Gather(ctx, country, flower)
	candidates, method := f.ranker.Rank(results, country, flower)

	if f.enricher != nil {
		f.enricher.Enrich(ctx, candidates)
	}

	f.logger.Info("region ranking complete",
		"country", country, "candidates", len(candidates), "method", method)

	return domain.TopRegionsResult{
		Country:          country,
		Flower:           flower,
		Regions:          candidates,
		TotalSources:     len(results),
		ExtractionMethod: method,
	}, nil
}
