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

// newsWindow bounds how far back news articles are requested.
const newsWindow = 30 * 24 * time.Hour

// NewsAPI queries the NewsAPI "everything" endpoint.
type NewsAPI struct {
	endpoint string
	apiKey   string
	http     *http.Client
	now      func() time.Time
}

var _ ports.SearchProvider = (*NewsAPI)(nil)

// NewNewsAPI creates a reusable NewsAPI client.
func NewNewsAPI(endpoint, apiKey string) *NewsAPI {
	return &NewsAPI{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
		now:      time.Now,
	}
}

// Name implements ports.SearchProvider.
func (n *NewsAPI) Name() string { return "newsapi" }

// BuildQuery targets recent climate and agriculture coverage.
func (n *NewsAPI) BuildQuery(region, flower string) string {
	return fmt.Sprintf("%s blooming %s climate agriculture", flower, region)
}

// Search implements ports.SearchProvider.
func (n *NewsAPI) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if n.apiKey == "" {
		return nil, fmt.Errorf("newsapi key not configured")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", fmt.Sprintf("%d", maxResults))
	params.Set("from", n.now().Add(-newsWindow).Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %s", resp.Status)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(payload.Articles))
	for i, item := range payload.Articles {
		if i >= maxResults {
			break
		}
		results = append(results, domain.SearchResult{
			Title:       item.Title,
			Snippet:     item.Description,
			Link:        item.URL,
			Source:      "NewsAPI",
			PublishedAt: item.PublishedAt,
		})
	}

	return results, nil
}
