package usecases_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
)

type mockRoadRouter struct {
	routesFn func(ctx context.Context, origin, destination domain.GeoPoint, profile string) ([]ports.RoadPath, error)
}

func (m *mockRoadRouter) Routes(ctx context.Context, origin, destination domain.GeoPoint, profile string) ([]ports.RoadPath, error) {
	return m.routesFn(ctx, origin, destination, profile)
}

type mockTransitPlanner struct {
	planFn func(ctx context.Context, origin, destination domain.NamedLocation) ([]ports.TransitJourney, error)
}

func (m *mockTransitPlanner) PlanJourneys(ctx context.Context, origin, destination domain.NamedLocation) ([]ports.TransitJourney, error) {
	return m.planFn(ctx, origin, destination)
}

var (
	testOrigin = domain.NamedLocation{
		Position: domain.GeoPoint{Lat: 53.3498, Lon: -6.2603},
		Label:    "Dublin City Centre",
	}
	testDestination = domain.NamedLocation{
		Position: domain.GeoPoint{Lat: 53.3244, Lon: -6.2518},
		Label:    "Ballsbridge",
	}
)

func newTestPlanner(road ports.RoadRouter, transit ports.TransitPlanner) *usecases.PlannerService {
	tolls := usecases.NewTollService(nil, 0.5)
	return usecases.NewPlannerService(road, transit, tolls)
}

func TestPlanRoadBuildsLabeledItineraries(t *testing.T) {
	road := &mockRoadRouter{
		routesFn: func(_ context.Context, _, _ domain.GeoPoint, profile string) ([]ports.RoadPath, error) {
			if profile != "car" {
				t.Errorf("expected profile car, got %s", profile)
			}
			return []ports.RoadPath{
				{Coordinates: []domain.GeoPoint{{Lat: 53.3, Lon: -6.2}}, DistanceMeters: 3210, TimeMillis: 600000},
				{Coordinates: []domain.GeoPoint{{Lat: 53.3, Lon: -6.3}}, DistanceMeters: 3540, TimeMillis: 780000},
				{Coordinates: []domain.GeoPoint{{Lat: 53.4, Lon: -6.2}}, DistanceMeters: 4100, TimeMillis: 900000},
			}, nil
		},
	}
	svc := newTestPlanner(road, nil)

	result, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Itineraries) != 3 {
		t.Fatalf("expected 3 itineraries, got %d", len(result.Itineraries))
	}
	if !result.Applied {
		t.Error("expected first result to be applied")
	}

	first := result.Itineraries[0]
	if first.Label != domain.LabelOptimized {
		t.Errorf("expected first label %q, got %q", domain.LabelOptimized, first.Label)
	}
	if got := first.Description[0]; got != "Optimized route: 3.21 km, 10.00 min" {
		t.Errorf("unexpected description: %q", got)
	}
	if first.DistanceKm == nil || *first.DistanceKm != 3.21 {
		t.Errorf("expected distance 3.21, got %v", first.DistanceKm)
	}
	if first.Toll == nil {
		t.Error("expected car itinerary to carry a toll charge")
	}

	second := result.Itineraries[1]
	if second.Label != domain.LabelAlternative {
		t.Errorf("expected second label %q, got %q", domain.LabelAlternative, second.Label)
	}
	if got := second.Description[0]; got != "Alternative route 1: 3.54 km, 13.00 min" {
		t.Errorf("unexpected description: %q", got)
	}
}

func TestPlanFootSkipsTolls(t *testing.T) {
	road := &mockRoadRouter{
		routesFn: func(_ context.Context, _, _ domain.GeoPoint, _ string) ([]ports.RoadPath, error) {
			return []ports.RoadPath{{Coordinates: []domain.GeoPoint{{Lat: 53.3, Lon: -6.2}}, DistanceMeters: 900, TimeMillis: 660000}}, nil
		},
	}
	svc := newTestPlanner(road, nil)

	result, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeFoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := result.Itineraries[0]
	if it.Toll != nil {
		t.Error("foot itinerary must not carry a toll charge")
	}
	if !it.Segments[0].IsWalking {
		t.Error("foot segment should be marked walking")
	}
}

func TestPlanMissingEndpoint(t *testing.T) {
	svc := newTestPlanner(nil, nil)

	_, err := svc.Plan(context.Background(), domain.NamedLocation{}, testDestination, domain.ModeCar)
	if !errors.Is(err, domain.ErrMissingEndpoint) {
		t.Errorf("expected ErrMissingEndpoint, got %v", err)
	}
}

func TestPlanBusRequiresResolvedTransitLocations(t *testing.T) {
	svc := newTestPlanner(nil, &mockTransitPlanner{})

	_, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeBus)
	if !errors.Is(err, domain.ErrMissingEndpoint) {
		t.Errorf("expected ErrMissingEndpoint for unresolved transit endpoints, got %v", err)
	}
}

func TestPlanNoRoutes(t *testing.T) {
	road := &mockRoadRouter{
		routesFn: func(_ context.Context, _, _ domain.GeoPoint, _ string) ([]ports.RoadPath, error) {
			return []ports.RoadPath{}, nil
		},
	}
	svc := newTestPlanner(road, nil)

	_, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeBike)
	if !errors.Is(err, domain.ErrNoRoutes) {
		t.Errorf("expected ErrNoRoutes, got %v", err)
	}
}

func TestPlanWrapsProviderFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	road := &mockRoadRouter{
		routesFn: func(_ context.Context, _, _ domain.GeoPoint, _ string) ([]ports.RoadPath, error) {
			return nil, upstream
		},
	}
	svc := newTestPlanner(road, nil)

	_, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeCar)
	var provErr *domain.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Mode != domain.ModeCar {
		t.Errorf("expected mode car in error, got %s", provErr.Mode)
	}
	if !errors.Is(err, upstream) {
		t.Error("expected wrapped upstream error to be reachable")
	}
}

func TestPlanTransitLimitsToThreeJourneys(t *testing.T) {
	busOrigin := testOrigin
	busOrigin.ExternalID = "stop:1"
	busDest := testDestination
	busDest.ExternalID = "stop:2"

	journey := ports.TransitJourney{
		Legs: []ports.TransitLeg{{
			Mode:     "BUS",
			Duration: "PT20M",
			Origin:   ports.TransitStop{Name: "A", Position: domain.GeoPoint{Lat: 53.3, Lon: -6.2}},
			Destination: ports.TransitStop{
				Name: "B", Position: domain.GeoPoint{Lat: 53.31, Lon: -6.21},
			},
		}},
		Modes: []string{"BUS"},
	}
	transit := &mockTransitPlanner{
		planFn: func(_ context.Context, _, _ domain.NamedLocation) ([]ports.TransitJourney, error) {
			return []ports.TransitJourney{journey, journey, journey, journey, journey}, nil
		},
	}
	svc := newTestPlanner(nil, transit)

	result, err := svc.Plan(context.Background(), busOrigin, busDest, domain.ModeBus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Itineraries) != 3 {
		t.Errorf("expected at most 3 itineraries, got %d", len(result.Itineraries))
	}
}

func TestStaleResultIsDiscarded(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	road := &mockRoadRouter{
		routesFn: func(_ context.Context, _, _ domain.GeoPoint, _ string) ([]ports.RoadPath, error) {
			path := []ports.RoadPath{{Coordinates: []domain.GeoPoint{{Lat: 53.3, Lon: -6.2}}, DistanceMeters: 1000, TimeMillis: 60000}}
			if atomic.AddInt32(&calls, 1) == 1 {
				close(entered)
				<-release
			}
			return path, nil
		},
	}
	svc := newTestPlanner(road, nil)

	var slow *usecases.PlanResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		slow, _ = svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeCar)
	}()

	<-entered
	fast, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeBike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(release)
	<-done

	if slow == nil {
		t.Fatal("slow plan returned no result")
	}
	if slow.Token >= fast.Token {
		t.Fatalf("slow plan should hold the older token: %d vs %d", slow.Token, fast.Token)
	}
	if slow.Applied {
		t.Error("stale result must not be applied")
	}

	token, _ := svc.Latest()
	if token != fast.Token {
		t.Errorf("latest view token = %d, want %d", token, fast.Token)
	}
}

func TestLatestKeepsNewestResultOnly(t *testing.T) {
	road := &mockRoadRouter{
		routesFn: func(_ context.Context, _, _ domain.GeoPoint, _ string) ([]ports.RoadPath, error) {
			return []ports.RoadPath{{Coordinates: []domain.GeoPoint{{Lat: 53.3, Lon: -6.2}}, DistanceMeters: 1000, TimeMillis: 60000}}, nil
		},
	}
	svc := newTestPlanner(road, nil)

	first, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeCar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Plan(context.Background(), testOrigin, testDestination, domain.ModeBike)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Token >= second.Token {
		t.Fatalf("tokens must increase: %d then %d", first.Token, second.Token)
	}
	if !second.Applied {
		t.Error("newest result should be applied")
	}

	token, view := svc.Latest()
	if token != second.Token {
		t.Errorf("latest token = %d, want %d", token, second.Token)
	}
	if len(view) != len(second.Itineraries) {
		t.Errorf("latest view has %d itineraries, want %d", len(view), len(second.Itineraries))
	}
}
