package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// LocationService resolves free-text queries to geocoded locations. The
// general geocoder serves road planning and map search; the transit locator
// returns candidates carrying the external IDs bus-mode planning needs.
type LocationService struct {
	geocoder ports.Geocoder
	transit  ports.TransitLocator
	cache    ports.CacheService
}

// NewLocationService creates a new LocationService.
func NewLocationService(geocoder ports.Geocoder, transit ports.TransitLocator, cache ports.CacheService) *LocationService {
	return &LocationService{geocoder: geocoder, transit: transit, cache: cache}
}

// Search forward-geocodes free text, preserving provider relevance order.
// An empty query yields an empty result, not an error.
func (s *LocationService) Search(ctx context.Context, query string) ([]domain.NamedLocation, error) {
	if query == "" {
		return []domain.NamedLocation{}, nil
	}

	cacheKey := "loc:search:" + query
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var locations []domain.NamedLocation
			if err := json.Unmarshal(data, &locations); err == nil {
				metrics.CacheHits.WithLabelValues("location_search").Inc()
				return locations, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("location_search").Inc()
	}

	locations, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	// Cache for 10 minutes (geocoding results are stable)
	if s.cache != nil {
		if data, err := json.Marshal(locations); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return locations, nil
}

// SearchTransit resolves text against the transit provider's gazetteer.
func (s *LocationService) SearchTransit(ctx context.Context, query string) ([]domain.NamedLocation, error) {
	if query == "" {
		return []domain.NamedLocation{}, nil
	}

	cacheKey := "loc:transit:" + query
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var locations []domain.NamedLocation
			if err := json.Unmarshal(data, &locations); err == nil {
				metrics.CacheHits.WithLabelValues("location_transit").Inc()
				return locations, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("location_transit").Inc()
	}

	locations, err := s.transit.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(locations); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return locations, nil
}

// Reverse returns a display label for a point. Provider failure resolves to
// an empty label (the client leaves its field blank) rather than an error.
func (s *LocationService) Reverse(ctx context.Context, p domain.GeoPoint) string {
	cacheKey := fmt.Sprintf("loc:rev:%.5f:%.5f", p.Lat, p.Lon)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			return string(data)
		}
	}

	label, err := s.geocoder.Reverse(ctx, p)
	if err != nil {
		slog.Debug("reverse geocode failed", "lat", p.Lat, "lon", p.Lon, "error", err)
		return ""
	}

	if s.cache != nil && label != "" {
		_ = s.cache.Set(ctx, cacheKey, []byte(label), 3600)
	}

	return label
}
