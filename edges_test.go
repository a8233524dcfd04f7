package lowpoly

import (
	"math/rand"
	"testing"
)

func TestSobelFindsVerticalEdge(t *testing.T) {
	g := sobel(luminance(halves(20, 10)), 10)
	for y := 0; y < 10; y++ {
		if g.at(2, y) != 0 || g.at(17, y) != 0 {
			t.Fatalf("flat area reported as edge on row %d", y)
		}
		if g.at(9, y) == 0 && g.at(10, y) == 0 {
			t.Fatalf("edge missed on row %d", y)
		}
	}
}

func TestBoxBlur(t *testing.T) {
	g := boxBlur(luminance(uniform(5, 5, RGB{90, 90, 90})), 2)
	for i, v := range g.pix {
		if v < 89.999 || v > 90.001 {
			t.Fatalf("blurred uniform value %v at %d, want 90", v, i)
		}
	}
}

func TestEdgePoints(t *testing.T) {
	const segments = 5
	src := halves(60, 40)
	points := EdgePoints(src, segments, 1, 20, rand.New(rand.NewSource(1)))

	if len(points) != segments*segments {
		t.Fatalf("expected %d points, got %d", segments*segments, len(points))
	}
	seen := make(map[Point]bool)
	var onEdge int
	for _, p := range points {
		if seen[p] {
			t.Fatalf("duplicate point %v", p)
		}
		seen[p] = true
		if p.X > 0 && p.X < 60 && p.Y > 0 && p.Y < 40 && p.X >= 25 && p.X <= 35 {
			onEdge++
		}
	}
	for _, c := range []Point{Pt(0, 0), Pt(60, 0), Pt(0, 40), Pt(60, 40)} {
		if !seen[c] {
			t.Errorf("corner %v missing", c)
		}
	}
	// All 9 interior points come from the color boundary at x=30.
	if onEdge != 9 {
		t.Errorf("%d interior points near the edge, want 9", onEdge)
	}
}
