package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// EnvironmentService serves the dashboard widgets: live air quality and
// current weather, both cached to keep widget refreshes off the upstream
// rate limits.
type EnvironmentService struct {
	air     ports.AirQualityProvider
	weather ports.WeatherProvider
	cache   ports.CacheService
}

// NewEnvironmentService creates a new EnvironmentService.
func NewEnvironmentService(air ports.AirQualityProvider, weather ports.WeatherProvider, cache ports.CacheService) *EnvironmentService {
	return &EnvironmentService{air: air, weather: weather, cache: cache}
}

// AirQuality returns the AQI reading for a feed (city name, "@<station>",
// or "geo:lat;lon").
func (s *EnvironmentService) AirQuality(ctx context.Context, feed string) (*ports.AirQualityReading, error) {
	cacheKey := "env:aqi:" + feed
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var reading ports.AirQualityReading
			if err := json.Unmarshal(data, &reading); err == nil {
				metrics.CacheHits.WithLabelValues("aqi").Inc()
				return &reading, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("aqi").Inc()
	}

	reading, err := s.air.FeedByCity(ctx, feed)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(reading); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}
	return reading, nil
}

// Weather returns current conditions at a point.
func (s *EnvironmentService) Weather(ctx context.Context, p domain.GeoPoint) (*ports.WeatherObservation, error) {
	cacheKey := fmt.Sprintf("env:wx:%.3f:%.3f", p.Lat, p.Lon)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var obs ports.WeatherObservation
			if err := json.Unmarshal(data, &obs); err == nil {
				metrics.CacheHits.WithLabelValues("weather").Inc()
				return &obs, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("weather").Inc()
	}

	obs, err := s.weather.Current(ctx, p)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(obs); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}
	return obs, nil
}
