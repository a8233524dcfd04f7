package lowpoly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func TestFeatureCollection(t *testing.T) {
	pop := &Population{Faces: []*Face{{
		Members:  [3]int{4, 5, 6},
		Triangle: NewTriangle(Pt(0, 0), Pt(0, 10), Pt(10, 0)),
		Color:    RGB{255, 16, 1},
		Fitness:  3.5,
	}}}

	fc := FeatureCollection(pop)
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	f := fc.Features[0]
	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("geometry is %T, want orb.Polygon", f.Geometry)
	}
	ring := poly[0]
	if len(ring) != 4 || !ring.Closed() {
		t.Errorf("ring %v should be a closed triangle", ring)
	}
	if ring.Orientation() != orb.CCW {
		t.Errorf("ring %v should be counter-clockwise", ring)
	}
	if fill := f.Properties.MustString("fill"); fill != "#ff1001" {
		t.Errorf("fill = %q, want #ff1001", fill)
	}
	if fit := f.Properties.MustFloat64("fitness"); fit != 3.5 {
		t.Errorf("fitness = %v, want 3.5", fit)
	}
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.geojson")
	pop := &Population{Faces: []*Face{{Triangle: NewTriangle(Pt(0, 0), Pt(4, 0), Pt(0, 4))}}}
	if err := WriteGeoJSON(path, pop); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(fc.Features))
	}
}
