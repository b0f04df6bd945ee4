package usecases

import (
	"fmt"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/geospatial"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/metrics"
)

// TollService annotates road routes with toll charges by proximity-matching
// route coordinates against the static toll-station table.
type TollService struct {
	stations []domain.TollStation
	radiusKm float64
}

// NewTollService creates a TollService over an immutable station table.
func NewTollService(stations []domain.TollStation, radiusKm float64) *TollService {
	return &TollService{stations: stations, radiusKm: radiusKm}
}

// Stations returns the static toll table.
func (s *TollService) Stations() []domain.TollStation {
	return s.stations
}

// Annotate computes the toll charge for one route. A toll station counts
// once when any route coordinate passes within the configured radius, no
// matter how many coordinates trigger the match; names keep first-match
// order. Routes passing no tolls get a zero charge, not nil.
func (s *TollService) Annotate(coords []domain.GeoPoint) *domain.TollCharge {
	passed := make(map[string]bool, len(s.stations))
	names := []string{}
	total := 0.0

	for _, p := range coords {
		for _, t := range s.stations {
			if passed[t.Name] {
				continue
			}
			d := geospatial.HaversineKm(p.Lat, p.Lon, t.Position.Lat, t.Position.Lon)
			if d < s.radiusKm {
				passed[t.Name] = true
				names = append(names, t.Name)
				total += t.Price
				metrics.TollsMatched.Inc()
			}
		}
	}

	return &domain.TollCharge{
		Cost:  fmt.Sprintf("%.2f", total),
		Names: names,
	}
}
