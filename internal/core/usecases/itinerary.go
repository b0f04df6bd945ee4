package usecases

import (
	"fmt"
	"math"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/ports"
	"github.com/SubhayanDas08/ase-grp2-sub001/internal/pkg/isoduration"
)

// buildTransitItinerary flattens one provider journey into a display-ready
// itinerary: an ordered stop list, one description line per leg, and a
// single drawable segment. The segment uses the journey polyline when the
// provider sent one and falls back to the stop positions when it did not.
func buildTransitItinerary(j ports.TransitJourney, label string) domain.Itinerary {
	var (
		stops        []domain.Stop
		descriptions []string
		totalMinutes float64
	)

	for i, leg := range j.Legs {
		minutes := isoduration.Minutes(leg.Duration)
		totalMinutes += minutes

		service := leg.ServiceNumber
		if service == "" {
			service = "N/A"
		}

		originName := leg.Origin.Name
		if originName == "" {
			originName = fmt.Sprintf("Start Point %d", i+1)
		}
		destName := leg.Destination.Name
		if destName == "" {
			destName = fmt.Sprintf("End Point %d", i+1)
		}

		stops = append(stops, domain.Stop{
			Position:     leg.Origin.Position,
			Name:         originName,
			Time:         leg.Origin.Departure,
			ServiceLabel: service,
			Mode:         leg.Mode,
		})
		for _, s := range leg.IntermediateStops {
			name := s.Name
			if name == "" {
				name = "Intermediate Stop"
			}
			stops = append(stops, domain.Stop{
				Position:     s.Position,
				Name:         name,
				Time:         s.Arrival,
				ServiceLabel: service,
				Mode:         leg.Mode,
			})
		}
		stops = append(stops, domain.Stop{
			Position:     leg.Destination.Position,
			Name:         destName,
			Time:         leg.Destination.Arrival,
			ServiceLabel: service,
			Mode:         leg.Mode,
		})

		descriptions = append(descriptions, legDescription(leg, originName, destName, minutes))
	}

	segMode := "BUS"
	if len(j.Modes) > 0 {
		segMode = j.Modes[0]
	}
	segService := "N/A"
	for _, leg := range j.Legs {
		if leg.Mode == "BUS" && leg.ServiceNumber != "" {
			segService = leg.ServiceNumber
			break
		}
	}

	coords := j.Polyline
	if len(coords) == 0 {
		coords = make([]domain.GeoPoint, 0, len(stops))
		for _, s := range stops {
			coords = append(coords, s.Position)
		}
	}

	return domain.Itinerary{
		Label: label,
		Segments: []domain.RouteSegment{{
			Coordinates:  coords,
			Mode:         segMode,
			ServiceLabel: segService,
		}},
		Stops:           stops,
		DurationMinutes: math.Round(totalMinutes*10) / 10,
		Description:     descriptions,
	}
}

// legDescription renders one rider-facing line per leg. The service number
// is left blank (not "N/A") in the line when the provider omitted it.
func legDescription(leg ports.TransitLeg, originName, destName string, minutes float64) string {
	route := fmt.Sprintf("%s → %s (%.1f mins)", originName, destName, minutes)

	switch leg.Mode {
	case "TRAM":
		return fmt.Sprintf("Tram %s: %s", leg.ServiceNumber, route)
	case "BUS":
		return fmt.Sprintf("Bus %s: %s", leg.ServiceNumber, route)
	case "RAIL":
		return fmt.Sprintf("Train %s: %s", leg.ServiceNumber, route)
	case "WALK":
		return "Walk: " + route
	default:
		return fmt.Sprintf("%s: %s", leg.Mode, route)
	}
}
