// Package nominatim calls an OSM Nominatim-compatible geocoding service.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// Client implements ports.Geocoder.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search forward-geocodes free text, preserving provider relevance order.
func (c *Client) Search(ctx context.Context, query string) ([]domain.NamedLocation, error) {
	if query == "" {
		return []domain.NamedLocation{}, nil
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)

	start := time.Now()
	body, err := c.get(ctx, c.baseURL+"/search?"+q.Encode())
	metrics.ObserveProvider("nominatim", start, err)
	if err != nil {
		return nil, err
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	locations := make([]domain.NamedLocation, 0, len(results))
	for _, r := range results {
		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		locations = append(locations, domain.NamedLocation{
			Position: domain.GeoPoint{Lat: lat, Lon: lon},
			Label:    r.DisplayName,
		})
	}
	return locations, nil
}

// Reverse returns the display label for a point.
func (c *Client) Reverse(ctx context.Context, p domain.GeoPoint) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Lon, 'f', -1, 64))

	start := time.Now()
	body, err := c.get(ctx, c.baseURL+"/reverse?"+q.Encode())
	metrics.ObserveProvider("nominatim", start, err)
	if err != nil {
		return "", err
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode reverse response: %w", err)
	}
	return result.DisplayName, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "cityflow-gateway/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nominatim body: %w", err)
	}
	return body, nil
}
