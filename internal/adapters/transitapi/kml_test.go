package transitapi

import "testing"

func TestExtractKMLCoordinates(t *testing.T) {
	kml := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <LineString>
        <coordinates>
          -6.2603,53.3498,0 -6.2610,53.3510,0
        </coordinates>
      </LineString>
    </Placemark>
    <Placemark>
      <LineString>
        <coordinates>-6.2650,53.3530</coordinates>
      </LineString>
    </Placemark>
  </Document>
</kml>`

	points := ExtractKMLCoordinates(kml)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Lat != 53.3498 || points[0].Lon != -6.2603 {
		t.Errorf("first point wrong: %+v", points[0])
	}
	if points[2].Lat != 53.3530 || points[2].Lon != -6.2650 {
		t.Errorf("last point wrong: %+v", points[2])
	}
}

func TestExtractKMLCoordinates_MalformedTuplesSkipped(t *testing.T) {
	kml := `<kml><coordinates>-6.26,53.34 junk -6.27,notanumber -6.28,53.36</coordinates></kml>`
	points := ExtractKMLCoordinates(kml)
	if len(points) != 2 {
		t.Fatalf("expected 2 valid points, got %d", len(points))
	}
}

func TestExtractKMLCoordinates_Empty(t *testing.T) {
	if points := ExtractKMLCoordinates(""); points != nil {
		t.Errorf("expected nil for empty document, got %v", points)
	}
	if points := ExtractKMLCoordinates("<kml></kml>"); points != nil {
		t.Errorf("expected nil for document without coordinates, got %v", points)
	}
}
