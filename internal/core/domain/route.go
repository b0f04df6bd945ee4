package domain

// TransportMode selects the upstream routing provider.
// CAR, BIKE, and FOOT are road profiles; BUS means multi-modal public
// transit and may produce BUS/RAIL/TRAM/WALK legs.
type TransportMode string

const (
	ModeCar  TransportMode = "car"
	ModeBike TransportMode = "bike"
	ModeFoot TransportMode = "foot"
	ModeBus  TransportMode = "bus"
)

// IsRoad reports whether the mode is served by the road-routing provider.
func (m TransportMode) IsRoad() bool {
	return m == ModeCar || m == ModeBike || m == ModeFoot
}

// Valid reports whether the mode is one of the supported values.
func (m TransportMode) Valid() bool {
	return m.IsRoad() || m == ModeBus
}

// NamedLocation is a resolved search result: a coordinate plus the label
// and provider identity it was resolved under. ExternalID and Kind come
// from the transit location lookup and are required for bus-mode planning;
// road modes only need the coordinate.
type NamedLocation struct {
	Position   GeoPoint `json:"position"`
	Label      string   `json:"label"`
	ExternalID string   `json:"external_id,omitempty"`
	Kind       string   `json:"kind,omitempty"` // e.g. LOCALITY, STOP, ADDRESS
}

// IsZero reports whether the location was never resolved.
func (l NamedLocation) IsZero() bool {
	return l.Label == "" && l.Position.IsZero()
}

// RouteSegment is one continuous drawable piece of an itinerary.
// Coordinates are in traversal order and always hold at least two points.
type RouteSegment struct {
	Coordinates  []GeoPoint `json:"coordinates"`
	Mode         string     `json:"mode"`
	ServiceLabel string     `json:"service_label"` // "N/A" when the leg has no service number
	IsWalking    bool       `json:"is_walking"`
}

// Stop is a transit stop visited by an itinerary, tagged with the mode and
// service of the leg it belongs to.
type Stop struct {
	Position     GeoPoint `json:"position"`
	Name         string   `json:"name"`
	Time         string   `json:"time,omitempty"` // ISO-8601 arrival or departure, empty if unknown
	ServiceLabel string   `json:"service_label"`
	Mode         string   `json:"mode"`
}

// Itinerary labels, index 0 of a road plan is the optimized route.
const (
	LabelOptimized   = "optimized"
	LabelAlternative = "alternative"
)

// Itinerary is one complete way of getting from origin to destination.
// Road itineraries have a single segment, no stops, and a known distance.
// Transit itineraries have per-leg segments and stops but no distance.
type Itinerary struct {
	Label           string         `json:"label"`
	Segments        []RouteSegment `json:"segments"`
	Stops           []Stop         `json:"stops,omitempty"`
	DurationMinutes float64        `json:"duration_minutes"`
	DistanceKm      *float64       `json:"distance_km,omitempty"`
	Description     []string       `json:"description"`
	Toll            *TollCharge    `json:"toll,omitempty"`
}

// TollStation is static reference data: a tolling point with a fixed price.
// The table is loaded once at startup and never mutated.
type TollStation struct {
	Name     string   `json:"name"`
	Position GeoPoint `json:"position"`
	Price    float64  `json:"price"`
}

// TollCharge is the toll annotation for a single road itinerary.
// Names are in first-match order; a toll is counted once no matter how many
// route coordinates fall within range of it.
type TollCharge struct {
	Cost  string   `json:"cost"` // total, 2-decimal formatted
	Names []string `json:"tolls"`
}
