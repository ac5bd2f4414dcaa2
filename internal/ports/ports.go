package ports

import (
	"context"

	"bloomcore/internal/domain"
)

// SearchProvider issues one query against a single external search backend.
// Implementations own their provider-specific query construction.
type SearchProvider interface {
	Name() string
	BuildQuery(region, flower string) string
	Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error)
}

// SearchGatherer fans out over unreliable providers and merges what survives.
// It never fails: a provider fault degrades to that provider's share only.
type SearchGatherer interface {
	Gather(ctx context.Context, region, flower string) []domain.SearchResult
}

// ChatClient sends a prompt to an external text-synthesis service.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ExplanationEngine produces the prose explanation for a bloom context.
// The boolean reports whether the external synthesis service was used
// (false means the deterministic fallback generated the text).
type ExplanationEngine interface {
	Explain(ctx context.Context, bc domain.BloomContext, searchSummary string) (string, bool)
}

// Geocoder resolves a place name (optionally scoped to a country) into
// [longitude, latitude] coordinates, best-effort.
type Geocoder interface {
	Resolve(ctx context.Context, name, country string) ([2]float64, bool)
}

// RegionLocator resolves a place name into [longitude, latitude] using only
// local data. Implementations must not touch the network, which makes the
// lookup safe inside deadline-gated pipelines.
type RegionLocator interface {
	Locate(name, country string) ([2]float64, bool)
}

// GeocodeClient queries an external geocoding API. Kept distinct from
// Geocoder so the resolver chain can treat the remote hop as one optional
// link behind the dataset and cache.
type GeocodeClient interface {
	Lookup(ctx context.Context, name, country string) ([2]float64, error)
}

// RegionEnricher fills coordinates into ranked candidates in place. A miss
// for one candidate must not disturb the others.
type RegionEnricher interface {
	Enrich(ctx context.Context, candidates []domain.RegionCandidate)
}
