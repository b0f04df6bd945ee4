// Package weatherapi calls the WeatherAPI current-conditions endpoint.
package weatherapi

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

// Client implements ports.WeatherProvider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Current struct {
		TempC      float64 `json:"temp_c"`
		FeelsLikeC float64 `json:"feelslike_c"`
		WindKph    float64 `json:"wind_kph"`
		Humidity   int     `json:"humidity"`
		PrecipMM   float64 `json:"precip_mm"`
		UV         float64 `json:"uv"`
		DewpointC  float64 `json:"dewpoint_c"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// Current fetches current conditions at a point.
func (c *Client) Current(ctx context.Context, p domain.GeoPoint) (*ports.WeatherObservation, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", fmt.Sprintf("%f,%f", p.Lat, p.Lon))

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	metrics.ObserveProvider("weatherapi", start, err)
	if err != nil {
		return nil, fmt.Errorf("weatherapi request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weatherapi status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("weatherapi body: %w", err)
	}

	var cr currentResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	return &ports.WeatherObservation{
		TempC:      cr.Current.TempC,
		FeelsLikeC: cr.Current.FeelsLikeC,
		WindKph:    cr.Current.WindKph,
		Humidity:   cr.Current.Humidity,
		PrecipMM:   cr.Current.PrecipMM,
		UV:         cr.Current.UV,
		DewpointC:  cr.Current.DewpointC,
		Condition:  cr.Current.Condition.Text,
	}, nil
}
