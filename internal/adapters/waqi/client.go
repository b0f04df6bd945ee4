// Package waqi calls the World Air Quality Index feed API.
package waqi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// Client implements ports.AirQualityProvider.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type feedResponse struct {
	Status string `json:"status"`
	Data   struct {
		AQI  int `json:"aqi"`
		City struct {
			Name string `json:"name"`
		} `json:"city"`
		DominentPol string `json:"dominentpol"`
	} `json:"data"`
}

// FeedByCity fetches the AQI feed for a city name, "@<stationID>", or
// "geo:lat;lon" selector.
func (c *Client) FeedByCity(ctx context.Context, feed string) (*ports.AirQualityReading, error) {
	u := fmt.Sprintf("%s/feed/%s/?token=%s", c.baseURL, url.PathEscape(feed), url.QueryEscape(c.token))

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	metrics.ObserveProvider("waqi", start, err)
	if err != nil {
		return nil, fmt.Errorf("waqi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("waqi status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("waqi body: %w", err)
	}

	var fr feedResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("decode waqi response: %w", err)
	}
	if fr.Status != "ok" {
		return nil, fmt.Errorf("waqi feed %q: status %s", feed, fr.Status)
	}

	return &ports.AirQualityReading{
		AQI:      fr.Data.AQI,
		Station:  fr.Data.City.Name,
		Dominant: fr.Data.DominentPol,
	}, nil
}
