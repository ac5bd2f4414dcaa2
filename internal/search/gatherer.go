package search

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"bloomcore/internal/domain"
	"bloomcore/internal/metrics"
	"bloomcore/internal/ports"
)

// ProviderResult tags one provider's outcome so the merge step can tell
// partial failure from an empty result set.
type ProviderResult struct {
	Provider string
	Results  []domain.SearchResult
	Err      error
}

// Gatherer queries every configured provider concurrently and merges whatever
// came back. A failed provider is logged and skipped; Gather itself never
// fails.
type Gatherer struct {
	providers  []ports.SearchProvider
	maxResults int
	logger     *slog.Logger
	recorder   *metrics.Recorder
}

var _ ports.SearchGatherer = (*Gatherer)(nil)

// NewGatherer wires a gatherer over an ordered provider list. Merge order
// follows the provider order, not completion order.
func NewGatherer(providers []ports.SearchProvider, maxResults int, logger *slog.Logger, recorder *metrics.Recorder) *Gatherer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gatherer{
		providers:  providers,
		maxResults: maxResults,
		logger:     logger,
		recorder:   recorder,
	}
}

// Gather runs all providers under ctx and returns the merged, deduplicated
// result list. An empty slice means every provider failed or found nothing.
func (g *Gatherer) Gather(ctx context.Context, region, flower string) []domain.SearchResult {
	if len(g.providers) == 0 {
		return nil
	}

	outcomes := make([]ProviderResult, len(g.providers))
	var wg sync.WaitGroup

	for i, provider := range g.providers {
		wg.Add(1)
		go func(slot int, p ports.SearchProvider) {
			defer wg.Done()
			query := p.BuildQuery(region, flower)
			results, err := p.Search(ctx, query, g.maxResults)
			outcomes[slot] = ProviderResult{Provider: p.Name(), Results: results, Err: err}
		}(i, provider)
	}
	wg.Wait()

	return g.merge(outcomes)
}

// merge flattens provider outcomes in slot order, dropping failed providers
// and duplicate links.
func (g *Gatherer) merge(outcomes []ProviderResult) []domain.SearchResult {
	var merged []domain.SearchResult
	seen := make(map[string]bool)

	for _, outcome := range outcomes {
		if outcome.Err != nil {
			g.logger.Warn("search provider failed",
				"provider", outcome.Provider, "error", outcome.Err)
			g.recorder.ProviderFailure(outcome.Provider)
			continue
		}
		for _, result := range outcome.Results {
			key := normalizeLink(result.Link)
			if key != "" && seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			result.Title = CleanText(result.Title)
			result.Snippet = CleanText(result.Snippet)
			merged = append(merged, result)
		}
	}

	return merged
}

// CleanText reduces an HTML fragment to its trimmed text content. Plain text
// passes through untouched.
func CleanText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// normalizeLink canonicalizes a URL for dedup: lowercased host, no fragment,
// no trailing slash. Unparseable links are compared verbatim.
func normalizeLink(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(link, "/")
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}
