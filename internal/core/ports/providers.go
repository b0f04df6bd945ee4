package ports

import (
	"context"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
)

// Geocoder resolves free text to coordinates and back (general gazetteer).
type Geocoder interface {
	// Search returns candidates in provider relevance order. An empty query
	// yields an empty slice, not an error.
	Search(ctx context.Context, query string) ([]domain.NamedLocation, error)
	// Reverse returns the best-match display label for a point.
	Reverse(ctx context.Context, p domain.GeoPoint) (string, error)
}

// TransitLocator resolves free text against the transit provider's own
// gazetteer. Its results carry the ExternalID needed for journey planning.
type TransitLocator interface {
	Lookup(ctx context.Context, query string) ([]domain.NamedLocation, error)
}

// RoadPath is one path returned by the road-routing provider,
// provider-reported units preserved.
type RoadPath struct {
	Coordinates    []domain.GeoPoint
	DistanceMeters float64
	TimeMillis     float64
}

// RoadRouter plans road routes (car, bike, foot profiles).
type RoadRouter interface {
	// Routes requests up to three alternative paths. A successful response
	// with zero paths returns an empty slice and nil error.
	Routes(ctx context.Context, origin, destination domain.GeoPoint, profile string) ([]RoadPath, error)
}

// TransitStop is a stop as reported inside a transit journey leg.
type TransitStop struct {
	Position  domain.GeoPoint
	Name      string
	Departure string // ISO-8601 timestamp, may be empty
	Arrival   string // ISO-8601 timestamp, may be empty
}

// TransitLeg is one single-mode segment of a planned transit journey.
type TransitLeg struct {
	Mode              string
	Duration          string // ISO-8601 duration, e.g. PT1H30M0S
	ServiceNumber     string
	Origin            TransitStop
	Destination       TransitStop
	IntermediateStops []TransitStop
}

// TransitJourney is a complete transit itinerary from the journey planner.
// Polyline, when present, is the drawable coordinate sequence for the whole
// journey (extracted from the provider's KML); when absent the itinerary
// falls back to stop-derived coordinates per leg.
type TransitJourney struct {
	Legs     []TransitLeg
	Modes    []string
	Polyline []domain.GeoPoint
}

// TransitPlanner plans multi-modal public-transport journeys.
type TransitPlanner interface {
	// PlanJourneys requests the fastest journeys between two resolved
	// locations. A successful response with zero journeys returns an empty
	// slice and nil error.
	PlanJourneys(ctx context.Context, origin, destination domain.NamedLocation) ([]TransitJourney, error)
}

// AirQualityReading is a single AQI observation for a city or station.
type AirQualityReading struct {
	AQI      int    `json:"aqi"`
	Station  string `json:"station"`
	Dominant string `json:"dominant,omitempty"`
}

// AirQualityProvider fetches live air-quality readings.
type AirQualityProvider interface {
	// FeedByCity accepts a city name, "@<stationID>", or "geo:lat;lon".
	FeedByCity(ctx context.Context, feed string) (*AirQualityReading, error)
}

// WeatherObservation is the current-conditions payload the widgets render.
type WeatherObservation struct {
	TempC      float64 `json:"temp_c"`
	FeelsLikeC float64 `json:"feelslike_c"`
	WindKph    float64 `json:"wind_kph"`
	Humidity   int     `json:"humidity"`
	PrecipMM   float64 `json:"precip_mm"`
	UV         float64 `json:"uv"`
	DewpointC  float64 `json:"dewpoint_c"`
	Condition  string  `json:"condition,omitempty"`
}

// WeatherProvider fetches current weather conditions.
type WeatherProvider interface {
	Current(ctx context.Context, p domain.GeoPoint) (*WeatherObservation, error)
}
