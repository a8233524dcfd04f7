package lowpoly

import "math"

// Triangle holds the geometry of a mesh face together with the values
// precomputed for the containment test.
type Triangle struct {
	A, B, C Point

	max Point
	// vertical reports whether two vertices lie on the x=0 line,
	// horizontal whether two of them lie on the y=0 line.
	vertical, horizontal bool
	vspan, hspan         [2]float64
}

// NewTriangle creates a new triangle from its three vertices.
func NewTriangle(a, b, c Point) Triangle {
	t := Triangle{
		A:   a,
		B:   b,
		C:   c,
		max: Point{Max(a.X, b.X, c.X), Max(a.Y, b.Y, c.Y)},
	}
	t.vertical, t.vspan = axisEdge(a, b, c, func(p Point) (float64, float64) { return p.X, p.Y })
	t.horizontal, t.hspan = axisEdge(a, b, c, func(p Point) (float64, float64) { return p.Y, p.X })
	return t
}

// axisEdge checks whether at least two vertices have a zero coordinate on the
// axis selected by pick, and returns the span of their other coordinate.
func axisEdge(a, b, c Point, pick func(Point) (float64, float64)) (bool, [2]float64) {
	var (
		span  [2]float64
		found int
	)
	for _, p := range [3]Point{a, b, c} {
		on, other := pick(p)
		if on != 0 {
			continue
		}
		if found == 0 {
			span = [2]float64{other, other}
		} else {
			span[0] = Min(span[0], other)
			span[1] = Max(span[1], other)
		}
		found++
	}
	return found >= 2, span
}

// Vertices returns the triangle vertices in construction order.
func (t Triangle) Vertices() [3]Point {
	return [3]Point{t.A, t.B, t.C}
}

// Contains reports whether p lies inside the triangle or on its boundary.
//
// The checks run in a fixed order: bounding box rejection, the degenerate
// x=0 / y=0 edges, exact vertex matches and finally barycentric coordinates.
// Slivers lying against the image border are numerically unstable under the
// barycentric test, hence the explicit handling of the axis edges.
func (t Triangle) Contains(p Point) bool {
	if p.X > t.max.X && p.Y > t.max.Y {
		return false
	}

	if t.vertical && p.X == 0 && p.Y >= t.vspan[0] && p.Y <= t.vspan[1] {
		return true
	}
	if t.horizontal && p.Y == 0 && p.X >= t.hspan[0] && p.X <= t.hspan[1] {
		return true
	}

	if p == t.A || p == t.B || p == t.C {
		return true
	}

	v0 := t.C.Sub(t.A)
	v1 := t.B.Sub(t.A)
	v2 := p.Sub(t.A)

	d00 := dot(v0, v0)
	d01 := dot(v0, v1)
	d02 := dot(v0, v2)
	d11 := dot(v1, v1)
	d12 := dot(v1, v2)

	invDenom := 1 / det(Point{d00, d01}, Point{d01, d11})
	u := det(Point{d11, d01}, Point{d12, d02}) * invDenom
	v := det(Point{d00, d01}, Point{d02, d12}) * invDenom

	return u >= 0 && v >= 0 && u+v <= 1
}

// Bounds returns the top-left and bottom-right corners of the bounding box.
func (t Triangle) Bounds() (min, max Point) {
	return Point{Min(t.A.X, t.B.X, t.C.X), Min(t.A.Y, t.B.Y, t.C.Y)}, t.max
}

// Area returns the signed area; it is positive for counter-clockwise vertices
// in a y-up frame.
func (t Triangle) Area() float64 {
	return (t.A.X*t.B.Y + t.B.X*t.C.Y + t.C.X*t.A.Y -
		t.A.Y*t.B.X - t.B.Y*t.C.X - t.C.Y*t.A.X) / 2
}

// Centroid returns the arithmetic mean of the vertices.
func (t Triangle) Centroid() Point {
	return Point{(t.A.X + t.B.X + t.C.X) / 3, (t.A.Y + t.B.Y + t.C.Y) / 3}
}

// Each calls fn for every integer pixel of the bounding box covered by the triangle,
// scanning row by row. The right and bottom box edges are exclusive, so a mesh
// spanning [0, width] x [0, height] never addresses a pixel outside the image.
func (t Triangle) Each(fn func(x, y int)) {
	min, max := t.Bounds()
	left, right := int(math.Floor(min.X)), int(math.Floor(max.X))
	top, bottom := int(math.Floor(min.Y)), int(math.Floor(max.Y))

	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			if t.Contains(Point{float64(x), float64(y)}) {
				fn(x, y)
			}
		}
	}
}
