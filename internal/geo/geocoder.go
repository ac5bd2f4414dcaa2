package geo

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"bloomcore/internal/domain"
	"bloomcore/internal/ports"
)

// Resolver turns region names into coordinates. Resolution order: cache,
// built-in dataset, external client (when configured), country center.
type Resolver struct {
	client ports.GeocodeClient
	cache  *lru.Cache[string, [2]float64]
	logger *slog.Logger
}

var _ ports.Geocoder = (*Resolver)(nil)
var _ ports.RegionLocator = (*Resolver)(nil)
var _ ports.RegionEnricher = (*Resolver)(nil)

// NewResolver builds a resolver. client may be nil; the dataset and country
// centers still apply.
func NewResolver(client ports.GeocodeClient, cacheSize int, logger *slog.Logger) *Resolver {
	if cacheSize <= 0 {
		cacheSize = 512
	}
	if logger == nil {
		logger = slog.Default()
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[string, [2]float64](cacheSize)
	return &Resolver{client: client, cache: cache, logger: logger}
}

// Resolve returns [longitude, latitude] for a region name, with ok=false when
// every source comes up empty.
func (r *Resolver) Resolve(ctx context.Context, name, country string) ([2]float64, bool) {
	key := normalizeName(name) + "|" + normalizeName(country)
	if coords, ok := r.cache.Get(key); ok {
		return coords, true
	}

	if coords, ok := datasetLookup(name, country); ok {
		r.cache.Add(key, coords)
		return coords, true
	}

	if r.client != nil {
		coords, err := r.client.Lookup(ctx, name, country)
		if err == nil {
			r.cache.Add(key, coords)
			return coords, true
		}
		r.logger.Warn("geocode lookup failed", "region", name, "error", err)
	}

	if coords, ok := CountryCenter(country); ok {
		r.cache.Add(key, coords)
		return coords, true
	}

	return [2]float64{}, false
}

// Locate resolves against the built-in dataset and country centers only. It
// never calls the external client, so it cannot block on the network.
func (r *Resolver) Locate(name, country string) ([2]float64, bool) {
	if coords, ok := datasetLookup(name, country); ok {
		return coords, true
	}
	return CountryCenter(country)
}

// Enrich fills missing coordinates on candidates in place. Candidates that
// cannot be resolved are flagged for downstream geocoding instead of dropped.
func (r *Resolver) Enrich(ctx context.Context, candidates []domain.RegionCandidate) {
	for i := range candidates {
		if candidates[i].Coordinates != nil {
			candidates[i].NeedsGeocoding = false
			continue
		}
		coords, ok := r.Resolve(ctx, candidates[i].Name, candidates[i].Country)
		if !ok {
			candidates[i].NeedsGeocoding = true
			continue
		}
		c := coords
		candidates[i].Coordinates = &c
		candidates[i].NeedsGeocoding = false
	}
}
