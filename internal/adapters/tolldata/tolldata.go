// Package tolldata carries the static toll-station reference table. It is
// embedded at build time, loaded once, and read-only for the lifetime of
// the process.
package tolldata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
)

//go:embed tolls.json
var rawTolls []byte

type tollRecord struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Price float64 `json:"price"`
}

// Load parses the embedded toll table.
func Load() ([]domain.TollStation, error) {
	var records []tollRecord
	if err := json.Unmarshal(rawTolls, &records); err != nil {
		return nil, fmt.Errorf("parse embedded toll table: %w", err)
	}

	stations := make([]domain.TollStation, 0, len(records))
	for _, r := range records {
		stations = append(stations, domain.TollStation{
			Name:     r.Name,
			Position: domain.GeoPoint{Lat: r.Lat, Lon: r.Lon},
			Price:    r.Price,
		})
	}
	return stations, nil
}
