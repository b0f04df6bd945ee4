package transitapi

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/SubhayanDas08/ase-grp2-sub001/internal/core/domain"
)

// ExtractKMLCoordinates pulls a flat polyline out of a KML document: every
// <coordinates> element, in document order, split on whitespace into
// "lng,lat[,alt]" tuples. Malformed tuples are skipped. An empty or
// unparsable document yields nil, which callers treat as "no polyline".
func ExtractKMLCoordinates(kml string) []domain.GeoPoint {
	if kml == "" {
		return nil
	}

	var points []domain.GeoPoint
	decoder := xml.NewDecoder(strings.NewReader(kml))
	inCoordinates := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inCoordinates = t.Name.Local == "coordinates"
		case xml.EndElement:
			inCoordinates = false
		case xml.CharData:
			if !inCoordinates {
				continue
			}
			for _, tuple := range strings.Fields(string(t)) {
				parts := strings.Split(tuple, ",")
				if len(parts) < 2 {
					continue
				}
				lng, errLng := strconv.ParseFloat(parts[0], 64)
				lat, errLat := strconv.ParseFloat(parts[1], 64)
				if errLng != nil || errLat != nil {
					continue
				}
				points = append(points, domain.GeoPoint{Lat: lat, Lon: lng})
			}
		}
	}
	return points
}
