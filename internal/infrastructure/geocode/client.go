// Package geocode talks to a Nominatim-compatible geocoding endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bloomcore/internal/ports"
)

// Client implements ports.GeocodeClient over the Nominatim search API.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ ports.GeocodeClient = (*Client)(nil)

// NewClient creates a reusable geocode client.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup returns [longitude, latitude] for a region name.
func (c *Client) Lookup(ctx context.Context, name, country string) ([2]float64, error) {
	query := name
	if country != "" {
		query = name + ", " + country
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return [2]float64{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "bloomcore/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return [2]float64{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return [2]float64{}, fmt.Errorf("geocode status %s", resp.Status)
	}

	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return [2]float64{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(places) == 0 {
		return [2]float64{}, fmt.Errorf("no results for %q", query)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("parse longitude: %w", err)
	}

	return [2]float64{lon, lat}, nil
}
