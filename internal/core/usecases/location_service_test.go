package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/usecases"
)

type mockGeocoder struct {
	searchFn  func(ctx context.Context, query string) ([]domain.NamedLocation, error)
	reverseFn func(ctx context.Context, p domain.GeoPoint) (string, error)
}

func (m *mockGeocoder) Search(ctx context.Context, query string) ([]domain.NamedLocation, error) {
	return m.searchFn(ctx, query)
}

func (m *mockGeocoder) Reverse(ctx context.Context, p domain.GeoPoint) (string, error) {
	return m.reverseFn(ctx, p)
}

type mockTransitLocator struct {
	lookupFn func(ctx context.Context, query string) ([]domain.NamedLocation, error)
}

func (m *mockTransitLocator) Lookup(ctx context.Context, query string) ([]domain.NamedLocation, error) {
	return m.lookupFn(ctx, query)
}

func TestSearchEmptyQueryReturnsEmptySlice(t *testing.T) {
	called := false
	geo := &mockGeocoder{
		searchFn: func(_ context.Context, _ string) ([]domain.NamedLocation, error) {
			called = true
			return nil, nil
		},
	}
	svc := usecases.NewLocationService(geo, nil, nil)

	locations, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locations == nil || len(locations) != 0 {
		t.Errorf("expected empty slice, got %v", locations)
	}
	if called {
		t.Error("provider must not be called for an empty query")
	}
}

func TestSearchPreservesProviderOrder(t *testing.T) {
	geo := &mockGeocoder{
		searchFn: func(_ context.Context, query string) ([]domain.NamedLocation, error) {
			if query != "dame street" {
				t.Errorf("unexpected query %q", query)
			}
			return []domain.NamedLocation{
				{Label: "Dame Street, Dublin", Position: domain.GeoPoint{Lat: 53.344, Lon: -6.266}},
				{Label: "Dame Street, Kilkenny", Position: domain.GeoPoint{Lat: 52.654, Lon: -7.252}},
			}, nil
		},
	}
	svc := usecases.NewLocationService(geo, nil, nil)

	locations, err := svc.Search(context.Background(), "dame street")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("expected 2 results, got %d", len(locations))
	}
	if locations[0].Label != "Dame Street, Dublin" {
		t.Errorf("order not preserved: %q first", locations[0].Label)
	}
}

func TestSearchTransitUsesLocator(t *testing.T) {
	locator := &mockTransitLocator{
		lookupFn: func(_ context.Context, _ string) ([]domain.NamedLocation, error) {
			return []domain.NamedLocation{
				{Label: "Heuston Station", ExternalID: "stop:8220", Kind: "STOP", Position: domain.GeoPoint{Lat: 53.346, Lon: -6.294}},
			}, nil
		},
	}
	svc := usecases.NewLocationService(nil, locator, nil)

	locations, err := svc.SearchTransit(context.Background(), "heuston")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locations) != 1 || locations[0].ExternalID != "stop:8220" {
		t.Errorf("expected transit result with external ID, got %v", locations)
	}
}

func TestReverseFailureYieldsEmptyLabel(t *testing.T) {
	geo := &mockGeocoder{
		reverseFn: func(_ context.Context, _ domain.GeoPoint) (string, error) {
			return "", errors.New("upstream down")
		},
	}
	svc := usecases.NewLocationService(geo, nil, nil)

	if label := svc.Reverse(context.Background(), domain.GeoPoint{Lat: 53.35, Lon: -6.26}); label != "" {
		t.Errorf("expected empty label on failure, got %q", label)
	}
}

func TestReverseReturnsLabel(t *testing.T) {
	geo := &mockGeocoder{
		reverseFn: func(_ context.Context, p domain.GeoPoint) (string, error) {
			return "O'Connell Street, Dublin", nil
		},
	}
	svc := usecases.NewLocationService(geo, nil, nil)

	if label := svc.Reverse(context.Background(), domain.GeoPoint{Lat: 53.35, Lon: -6.26}); label != "O'Connell Street, Dublin" {
		t.Errorf("unexpected label %q", label)
	}
}
