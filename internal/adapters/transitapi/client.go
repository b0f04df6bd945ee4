// Package transitapi calls the national journey-planner API: location
// lookup for transit-capable places and multi-modal journey planning.
package transitapi

import (
	"bytes"
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

// Client implements ports.TransitPlanner and ports.TransitLocator.
type Client struct {
	baseURL     string
	apiKey      string
	includeTram bool
	http        *http.Client
	now         func() time.Time
}

// New creates a transit API client. The subscription key is sent on every
// request via the Ocp-Apim-Subscription-Key header.
func New(baseURL, apiKey string, includeTram bool) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		includeTram: includeTram,
		http:        &http.Client{Timeout: 20 * time.Second},
		now:         time.Now,
	}
}

type coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type endpoint struct {
	Coordinate coordinate `json:"coordinate"`
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
}

type planRequest struct {
	Type                    string   `json:"type"`
	Modes                   []string `json:"modes"`
	Date                    string   `json:"date"`
	Time                    string   `json:"time"`
	ClientTimeZoneOffsetMs  int      `json:"clientTimeZoneOffsetInMs"`
	RouteType               string   `json:"routeType"`
	CyclePlanType           string   `json:"cyclePlanType"`
	CycleSpeed              int      `json:"cycleSpeed"`
	WalkingSpeed            int      `json:"walkingSpeed"`
	MaxWalkTime             int      `json:"maxWalkTime"`
	MinComfortWaitTime      int      `json:"minComfortWaitTime"`
	IncludeRealTimeUpdates  bool     `json:"includeRealTimeUpdates"`
	IncludeIntermediateStop bool     `json:"includeIntermediateStops"`
	Origin                  endpoint `json:"origin"`
	Destination             endpoint `json:"destination"`
	Via                     *string  `json:"via"`
}

type stopPayload struct {
	Coordinate        coordinate `json:"coordinate"`
	Name              string     `json:"name"`
	Departure         string     `json:"departure"`
	DepartureRealTime string     `json:"departureRealTime"`
	Arrival           string     `json:"arrival"`
	ArrivalRealTime   string     `json:"arrivalRealTime"`
}

type legPayload struct {
	Mode              string        `json:"mode"`
	Duration          string        `json:"duration"`
	ServiceNumber     string        `json:"serviceNumber"`
	Origin            stopPayload   `json:"origin"`
	Destination       stopPayload   `json:"destination"`
	IntermediateStops []stopPayload `json:"intermediateStops"`
}

type journeyPayload struct {
	Legs  []legPayload `json:"legs"`
	Modes []string     `json:"modes"`
	KML   string       `json:"kml"`
}

type planResponse struct {
	Journeys []journeyPayload `json:"journeys"`
}

// PlanJourneys requests the fastest public-transport journeys between two
// resolved locations and returns them in provider order.
func (c *Client) PlanJourneys(ctx context.Context, origin, destination domain.NamedLocation) ([]ports.TransitJourney, error) {
	now := c.now().UTC().Format(time.RFC3339)

	modes := []string{"BUS", "RAIL"}
	if c.includeTram {
		modes = append(modes, "TRAM")
	}

	reqBody := planRequest{
		Type:                    "LEAVE_AFTER",
		Modes:                   modes,
		Date:                    now,
		Time:                    now,
		RouteType:               "FASTEST",
		CyclePlanType:           "BALANCED",
		CycleSpeed:              20,
		WalkingSpeed:            1,
		MaxWalkTime:             30,
		MinComfortWaitTime:      5,
		IncludeRealTimeUpdates:  true,
		IncludeIntermediateStop: true,
		Origin: endpoint{
			Coordinate: coordinate{Latitude: origin.Position.Lat, Longitude: origin.Position.Lon},
			ID:         origin.ExternalID,
			Name:       origin.Label,
			Type:       origin.Kind,
		},
		Destination: endpoint{
			Coordinate: coordinate{Latitude: destination.Position.Lat, Longitude: destination.Position.Lon},
			ID:         destination.ExternalID,
			Name:       destination.Label,
			Type:       destination.Kind,
		},
		Via: nil,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode plan request: %w", err)
	}

	start := time.Now()
	body, err := c.post(ctx, c.baseURL+"/planJourney", payload)
	metrics.ObserveProvider("transit", start, err)
	if err != nil {
		return nil, err
	}

	var resp planResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		// Some deployments return a bare journey array.
		var journeys []journeyPayload
		if err2 := json.Unmarshal(body, &journeys); err2 != nil {
			return nil, fmt.Errorf("decode plan response: %w", err)
		}
		resp.Journeys = journeys
	}

	out := make([]ports.TransitJourney, 0, len(resp.Journeys))
	for _, j := range resp.Journeys {
		out = append(out, toJourney(j))
	}
	return out, nil
}

func toJourney(j journeyPayload) ports.TransitJourney {
	legs := make([]ports.TransitLeg, 0, len(j.Legs))
	for _, l := range j.Legs {
		leg := ports.TransitLeg{
			Mode:          l.Mode,
			Duration:      l.Duration,
			ServiceNumber: l.ServiceNumber,
			Origin:        toStop(l.Origin),
			Destination:   toStop(l.Destination),
		}
		for _, s := range l.IntermediateStops {
			leg.IntermediateStops = append(leg.IntermediateStops, toStop(s))
		}
		legs = append(legs, leg)
	}
	return ports.TransitJourney{Legs: legs, Modes: j.Modes, Polyline: ExtractKMLCoordinates(j.KML)}
}

func toStop(s stopPayload) ports.TransitStop {
	departure := s.DepartureRealTime
	if departure == "" {
		departure = s.Departure
	}
	arrival := s.ArrivalRealTime
	if arrival == "" {
		arrival = s.Arrival
	}
	return ports.TransitStop{
		Position:  domain.GeoPoint{Lat: s.Coordinate.Latitude, Lon: s.Coordinate.Longitude},
		Name:      s.Name,
		Departure: departure,
		Arrival:   arrival,
	}
}

type lookupResult struct {
	Status struct {
		Success bool `json:"success"`
	} `json:"status"`
	Name       string     `json:"name"`
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Coordinate coordinate `json:"coordinate"`
}

// Lookup resolves free text against the transit gazetteer. Results carry
// the provider IDs journey planning requires. Invalid entries are dropped.
func (c *Client) Lookup(ctx context.Context, query string) ([]domain.NamedLocation, error) {
	if query == "" {
		return []domain.NamedLocation{}, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("language", "en")

	start := time.Now()
	body, err := c.get(ctx, c.baseURL+"/locationLookup?"+q.Encode())
	metrics.ObserveProvider("transit_lookup", start, err)
	if err != nil {
		return nil, err
	}

	var results []lookupResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode lookup response: %w", err)
	}

	locations := make([]domain.NamedLocation, 0, len(results))
	for _, r := range results {
		if !r.Status.Success || r.ID == "" || r.Type == "" {
			continue
		}
		if r.Coordinate.Latitude == 0 && r.Coordinate.Longitude == 0 {
			continue
		}
		locations = append(locations, domain.NamedLocation{
			Position:   domain.GeoPoint{Lat: r.Coordinate.Latitude, Lon: r.Coordinate.Longitude},
			Label:      r.Name,
			ExternalID: r.ID,
			Kind:       r.Type,
		})
	}
	return locations, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, rawURL string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transit status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transit body: %w", err)
	}
	return body, nil
}
