package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPISearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tulip bloom patterns Kashmir Valley ecology phenology", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"organic_results": [
				{"title": "Tulip festival", "snippet": "currently blooming", "link": "https://example.com/a"},
				{"title": "Second", "snippet": "more", "link": "https://example.com/b"},
				{"title": "Third", "snippet": "extra", "link": "https://example.com/c"}
			]
		}`))
	}))
	defer server.Close()

	p := NewSerpAPI(server.URL, "secret")
	results, err := p.Search(context.Background(), p.BuildQuery("Kashmir Valley", "tulip"), 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Tulip festival", results[0].Title)
	assert.Equal(t, "SerpAPI", results[0].Source)
}

func TestSerpAPIMissingKey(t *testing.T) {
	p := NewSerpAPI("https://unused.example", "")
	_, err := p.Search(context.Background(), "q", 5)
	assert.Error(t, err)
}

func TestSerpAPINonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewSerpAPI(server.URL, "secret")
	_, err := p.Search(context.Background(), "q", 5)
	assert.Error(t, err)
}

func TestNewsAPISearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "relevancy", r.URL.Query().Get("sortBy"))
		assert.NotEmpty(t, r.URL.Query().Get("from"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"articles": [
				{"title": "Bloom news", "description": "sparse blooms", "url": "https://example.com/n", "publishedAt": "2026-08-20T10:00:00Z"}
			]
		}`))
	}))
	defer server.Close()

	p := NewNewsAPI(server.URL, "secret")
	results, err := p.Search(context.Background(), p.BuildQuery("Kerala", "lotus"), 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bloom news", results[0].Title)
	assert.Equal(t, "sparse blooms", results[0].Snippet)
	assert.Equal(t, "NewsAPI", results[0].Source)
	assert.Equal(t, "2026-08-20T10:00:00Z", results[0].PublishedAt)
}

func TestGoogleNewsSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rose bloom Provence", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<rss version="2.0"><channel><title>Google News</title>
<item>
	<title>Rose season opens</title>
	<link>https://example.com/rose</link>
	<description>&lt;a href="https://example.com/rose"&gt;Fields in full bloom&lt;/a&gt;</description>
	<pubDate>Mon, 24 Aug 2026 08:00:00 GMT</pubDate>
</item>
</channel></rss>`))
	}))
	defer server.Close()

	p := NewGoogleNews(server.URL)
	results, err := p.Search(context.Background(), p.BuildQuery("Provence", "rose"), 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Rose season opens", results[0].Title)
	assert.Equal(t, "Fields in full bloom", results[0].Snippet)
	assert.Equal(t, "Google News", results[0].Source)
}

func TestMockGathererDeterministic(t *testing.T) {
	m := NewMockGatherer()

	first := m.Gather(context.Background(), "Kerala, India", "lotus")
	second := m.Gather(context.Background(), "Kerala, India", "lotus")

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, "Lotus Blooming Patterns in Kerala, India", first[0].Title)
	assert.Equal(t, "Mock SerpAPI", first[0].Source)
	assert.Equal(t, "Mock NewsAPI", first[1].Source)
}
