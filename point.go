package lowpoly

import "math/rand"

// Point defines a mesh vertex position in image space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns the vector p*k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Less orders points by x, then by y.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

func dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

func det(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Mutate moves the point by delta and clamps the result inside [0, width] x [0, height].
// An axis sitting exactly on 0 or on its bound never moves, which keeps the image
// corners and borders covered by the mesh for the whole run.
func (p Point) Mutate(delta Point, width, height float64) Point {
	return Point{
		X: mutateAxis(p.X, delta.X, width),
		Y: mutateAxis(p.Y, delta.Y, height),
	}
}

func mutateAxis(v, delta, bound float64) float64 {
	if v == 0 || v == bound {
		return v
	}
	v += delta
	if v > bound {
		return bound
	}
	if v < 0 {
		return 0
	}
	return v
}

// gaussianDelta draws an independent zero-mean normal sample for each axis.
func gaussianDelta(r *rand.Rand, deviation float64) Point {
	return Point{
		X: r.NormFloat64() * deviation,
		Y: r.NormFloat64() * deviation,
	}
}

// GridPoints spreads segments x segments points evenly over the image,
// the first and last row and column lying on the image borders.
func GridPoints(width, height, segments int) []Point {
	if segments < 2 {
		segments = 2
	}
	w, h := float64(width), float64(height)
	stepX := w / float64(segments-1)
	stepY := h / float64(segments-1)

	points := make([]Point, 0, segments*segments)
	for i := 0; i < segments; i++ {
		x := float64(i) * stepX
		if i == segments-1 {
			x = w
		}
		for j := 0; j < segments; j++ {
			y := float64(j) * stepY
			if j == segments-1 {
				y = h
			}
			points = append(points, Point{x, y})
		}
	}
	return points
}
