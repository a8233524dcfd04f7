package lowpoly

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection converts the faces of a population into GeoJSON polygons in
// image coordinates. Each feature carries the face color as a hex "fill"
// property, its fitness and the ids of its members.
func FeatureCollection(pop *Population) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range pop.Faces {
		a, b, c := f.Triangle.A, f.Triangle.B, f.Triangle.C
		ring := orb.Ring{{a.X, a.Y}, {b.X, b.Y}, {c.X, c.Y}, {a.X, a.Y}}
		if ring.Orientation() == orb.CW {
			ring.Reverse()
		}

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["fill"] = fmt.Sprintf("#%02x%02x%02x", f.Color.R, f.Color.G, f.Color.B)
		feature.Properties["fitness"] = f.Fitness
		feature.Properties["members"] = f.Members[:]
		fc.Append(feature)
	}
	return fc
}

// WriteGeoJSON writes the population as a GeoJSON feature collection to path.
func WriteGeoJSON(path string, pop *Population) error {
	data, err := FeatureCollection(pop).MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
