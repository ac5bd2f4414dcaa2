// Package providers holds the concrete web search adapters behind
// ports.SearchProvider.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bloomcore/internal/domain"
	"bloomcore/internal/ports"
)

// SerpAPI queries the SerpAPI Google-results endpoint.
type SerpAPI struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.SearchProvider = (*SerpAPI)(nil)

// NewSerpAPI creates a reusable SerpAPI client.
func NewSerpAPI(endpoint, apiKey string) *SerpAPI {
	return &SerpAPI{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Name implements ports.SearchProvider.
func (s *SerpAPI) Name() string { return "serpapi" }

// BuildQuery targets ecological and phenological coverage.
func (s *SerpAPI) BuildQuery(region, flower string) string {
	return fmt.Sprintf("%s bloom patterns %s ecology phenology", flower, region)
}

// Search implements ports.SearchProvider.
func (s *SerpAPI) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("serpapi key not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi status %s", resp.Status)
	}

	var payload struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
			Date    string `json:"date"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(payload.OrganicResults))
	for i, item := range payload.OrganicResults {
		if i >= maxResults {
			break
		}
		results = append(results, domain.SearchResult{
			Title:       item.Title,
			Snippet:     item.Snippet,
			Link:        item.Link,
			Source:      "SerpAPI",
			PublishedAt: item.Date,
		})
	}

	return results, nil
}
