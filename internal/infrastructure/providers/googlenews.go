package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"bloomcore/internal/domain"
	"bloomcore/internal/ports"
	"bloomcore/internal/search"
)

// GoogleNews pulls the Google News RSS search feed. It needs no API key, so
// it stays usable when the keyed providers are not configured.
type GoogleNews struct {
	endpoint string
	http     *http.Client
}

var _ ports.SearchProvider = (*GoogleNews)(nil)

// NewGoogleNews creates a reusable feed client.
func NewGoogleNews(endpoint string) *GoogleNews {
	return &GoogleNews{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Name implements ports.SearchProvider.
func (g *GoogleNews) Name() string { return "googlenews" }

// BuildQuery keeps the feed query broad; RSS search does not handle long
// keyword chains well.
func (g *GoogleNews) BuildQuery(region, flower string) string {
	return fmt.Sprintf("%s bloom %s", flower, region)
}

// Search implements ports.SearchProvider.
func (g *GoogleNews) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google news request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news status %s", resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	results := make([]domain.SearchResult, 0, maxResults)
	for _, item := range feed.Items {
		if len(results) >= maxResults {
			break
		}
		published := ""
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		}
		results = append(results, domain.SearchResult{
			Title:       strings.TrimSpace(item.Title),
			Snippet:     search.CleanText(item.Description),
			Link:        strings.TrimSpace(item.Link),
			Source:      "Google News",
			PublishedAt: published,
		})
	}

	return results, nil
}
