// Package graphhopper calls the GraphHopper routing API for road profiles
// (car, bike, foot) and normalizes its paths into provider-neutral form.
package graphhopper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// Client implements ports.RoadRouter against the GraphHopper /route endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a GraphHopper client. baseURL is e.g. https://graphhopper.com/api/1.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type routeResponse struct {
	Paths []struct {
		Points struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat] pairs
		} `json:"points"`
		Distance float64 `json:"distance"` // meters
		Time     float64 `json:"time"`     // milliseconds
	} `json:"paths"`
}

// Routes requests up to three alternative paths between two points.
func (c *Client) Routes(ctx context.Context, origin, destination domain.GeoPoint, profile string) ([]ports.RoadPath, error) {
	q := url.Values{}
	q.Add("point", fmt.Sprintf("%f,%f", origin.Lat, origin.Lon))
	q.Add("point", fmt.Sprintf("%f,%f", destination.Lat, destination.Lon))
	q.Set("profile", profile)
	q.Set("locale", "en")
	q.Set("points_encoded", "false")
	q.Set("algorithm", "alternative_route")
	q.Set("alternative_route_max_paths", "3")
	q.Set("key", c.apiKey)

	start := time.Now()
	body, err := c.get(ctx, c.baseURL+"/route?"+q.Encode())
	metrics.ObserveProvider("graphhopper", start, err)
	if err != nil {
		return nil, err
	}

	var resp routeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}

	paths := make([]ports.RoadPath, 0, len(resp.Paths))
	for _, p := range resp.Paths {
		coords := make([]domain.GeoPoint, 0, len(p.Points.Coordinates))
		for _, pair := range p.Points.Coordinates {
			if len(pair) < 2 {
				continue
			}
			// GraphHopper emits [lng, lat]
			coords = append(coords, domain.GeoPoint{Lat: pair[1], Lon: pair[0]})
		}
		paths = append(paths, ports.RoadPath{
			Coordinates:    coords,
			DistanceMeters: p.Distance,
			TimeMillis:     p.Time,
		})
	}
	return paths, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphhopper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graphhopper status %d", resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("graphhopper body: %w", err)
	}
	return buf, nil
}
