package usecases

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

const maxTransitJourneys = 3

// PlanResult is the outcome of one plan request. Token orders requests;
// Applied reports whether this result became the latest view or was
// discarded because a newer request finished first.
type PlanResult struct {
	Token       uint64               `json:"token"`
	Mode        domain.TransportMode `json:"mode"`
	Itineraries []domain.Itinerary   `json:"itineraries"`
	Applied     bool                 `json:"applied"`
}

// PlannerService is the mode-keyed dispatch over the road and transit
// providers. It stamps every request with a monotonically increasing token
// and keeps the result of the newest finished request as the latest view;
// results arriving after a newer request has already been applied are
// discarded instead of overwriting fresher data.
type PlannerService struct {
	road    ports.RoadRouter
	transit ports.TransitPlanner
	tolls   *TollService

	seq atomic.Uint64

	mu        sync.Mutex
	viewToken uint64
	view      []domain.Itinerary
}

// NewPlannerService creates a new PlannerService.
func NewPlannerService(road ports.RoadRouter, transit ports.TransitPlanner, tolls *TollService) *PlannerService {
	return &PlannerService{road: road, transit: transit, tolls: tolls}
}

// Plan plans routes between two resolved locations for the given mode.
// It refuses to run with unset endpoints, maps an empty provider answer to
// domain.ErrNoRoutes, and never lets a raw transport error escape.
func (s *PlannerService) Plan(ctx context.Context, origin, destination domain.NamedLocation, mode domain.TransportMode) (*PlanResult, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unsupported transport mode %q", mode)
	}
	if origin.IsZero() || destination.IsZero() {
		return nil, domain.ErrMissingEndpoint
	}
	if mode == domain.ModeBus && (origin.ExternalID == "" || destination.ExternalID == "") {
		return nil, fmt.Errorf("%w: transit planning needs resolved transit locations", domain.ErrMissingEndpoint)
	}

	token := s.seq.Add(1)

	var (
		itineraries []domain.Itinerary
		err         error
	)
	if mode.IsRoad() {
		itineraries, err = s.planRoad(ctx, origin, destination, mode)
	} else {
		itineraries, err = s.planTransit(ctx, origin, destination)
	}
	if err != nil {
		metrics.PlansTotal.WithLabelValues(string(mode), "error").Inc()
		return nil, &domain.ProviderError{Mode: mode, Err: err}
	}
	if len(itineraries) == 0 {
		metrics.PlansTotal.WithLabelValues(string(mode), "empty").Inc()
		return nil, domain.ErrNoRoutes
	}

	metrics.PlansTotal.WithLabelValues(string(mode), "ok").Inc()
	applied := s.apply(token, itineraries)

	return &PlanResult{
		Token:       token,
		Mode:        mode,
		Itineraries: itineraries,
		Applied:     applied,
	}, nil
}

// Latest returns the newest applied plan view and its token. The slice is
// replaced wholesale on every apply, never mutated in place.
func (s *PlannerService) Latest() (uint64, []domain.Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewToken, s.view
}

// apply installs a result as the latest view unless a newer token already
// won; stale results are counted and dropped.
func (s *PlannerService) apply(token uint64, itineraries []domain.Itinerary) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token <= s.viewToken {
		metrics.StalePlansDiscarded.Inc()
		return false
	}
	s.viewToken = token
	s.view = itineraries
	return true
}

func (s *PlannerService) planRoad(ctx context.Context, origin, destination domain.NamedLocation, mode domain.TransportMode) ([]domain.Itinerary, error) {
	paths, err := s.road.Routes(ctx, origin.Position, destination.Position, string(mode))
	if err != nil {
		return nil, err
	}

	itineraries := make([]domain.Itinerary, 0, len(paths))
	for i, p := range paths {
		label := domain.LabelAlternative
		if i == 0 {
			label = domain.LabelOptimized
		}

		km := math.Round(p.DistanceMeters/1000*100) / 100
		mins := math.Round(p.TimeMillis/60000*100) / 100

		it := domain.Itinerary{
			Label: label,
			Segments: []domain.RouteSegment{{
				Coordinates:  p.Coordinates,
				Mode:         string(mode),
				ServiceLabel: "N/A",
				IsWalking:    mode == domain.ModeFoot,
			}},
			DurationMinutes: mins,
			DistanceKm:      &km,
			Description:     []string{roadDescription(i, km, mins)},
		}

		if mode == domain.ModeCar {
			it.Toll = s.tolls.Annotate(p.Coordinates)
		}

		itineraries = append(itineraries, it)
	}
	return itineraries, nil
}

func roadDescription(index int, km, mins float64) string {
	if index == 0 {
		return fmt.Sprintf("Optimized route: %.2f km, %.2f min", km, mins)
	}
	return fmt.Sprintf("Alternative route %d: %.2f km, %.2f min", index, km, mins)
}

func (s *PlannerService) planTransit(ctx context.Context, origin, destination domain.NamedLocation) ([]domain.Itinerary, error) {
	journeys, err := s.transit.PlanJourneys(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if len(journeys) > maxTransitJourneys {
		journeys = journeys[:maxTransitJourneys]
	}

	itineraries := make([]domain.Itinerary, 0, len(journeys))
	for i, j := range journeys {
		label := domain.LabelAlternative
		if i == 0 {
			label = domain.LabelOptimized
		}
		itineraries = append(itineraries, buildTransitItinerary(j, label))
	}
	return itineraries, nil
}
