package api

import (
	"math"

	"github.com/astroshield/go-impact-sim/internal/report"
	"github.com/astroshield/go-impact-sim/internal/units"
)

const circlePoints = 32

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// toGeoJSON renders the report's risk zones as circle polygons around
// the impact point, one Feature per zone, ordered inner to outer.
func toGeoJSON(rep *report.Report) FeatureCollection {
	lat := rep.Parameters.Latitude
	lon := rep.Parameters.Longitude

	features := make([]Feature, 0, len(rep.Zones)+1)

	features = append(features, Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Polygon",
			Coordinates: [][][]float64{circlePolygon(lat, lon, 0.01)},
		},
		Properties: map[string]any{
			"kind":  "impact_point",
			"label": "Impact point",
		},
	})

	for _, z := range rep.Zones {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Polygon",
				Coordinates: [][][]float64{circlePolygon(lat, lon, z.Zone.RadiusKM)},
			},
			Properties: map[string]any{
				"kind":                  string(z.Zone.Kind),
				"label":                 z.Zone.Label,
				"radius_km":             z.Zone.RadiusKM,
				"tier":                  string(z.Tier),
				"affected_population":   z.AffectedCount,
				"cumulative_population": z.CumulativeCount,
			},
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// circlePolygon approximates a ground circle as a closed ring of
// [lon, lat] positions using the flat 111 km/degree conversion.
func circlePolygon(centerLat, centerLon, radiusKM float64) [][]float64 {
	radiusDeg := radiusKM / units.KMPerDegree

	ring := make([][]float64, 0, circlePoints+1)
	for i := 0; i <= circlePoints; i++ {
		angle := 2 * math.Pi * float64(i%circlePoints) / circlePoints
		lat := centerLat + radiusDeg*math.Cos(angle)
		lon := centerLon + radiusDeg*math.Sin(angle)
		ring = append(ring, []float64{lon, lat})
	}
	return ring
}
