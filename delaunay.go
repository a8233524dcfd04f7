package lowpoly

import (
	"fmt"
	"math"
)

// Triangulator tessellates the convex hull of a set of unique points.
// Each returned triangle holds three indices into points.
type Triangulator interface {
	Triangulate(points []Point) ([][3]int, error)
}

// circle is the circumcircle of a triangle, radius kept squared.
type circle struct {
	x, y, radius float64
}

// node is a triangle of the working triangulation, vertices given as indices.
type node struct {
	v      [3]int
	circle circle
}

// edge is an undirected edge between two vertex indices, smallest index first.
type edge [2]int

func newEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Delaunay is a Bowyer-Watson triangulator.
//
// The points are inserted one by one into a super triangle enclosing all of them.
// Every triangle whose circumcircle contains the new point is removed and the
// hole is re-triangulated around the point. Triangles still touching the super
// triangle are discarded at the end.
type Delaunay struct {
	vertices  []Point
	triangles []node
}

// Triangulate returns the Delaunay triangulation of points.
func (d *Delaunay) Triangulate(points []Point) ([][3]int, error) {
	if len(points) < 3 {
		return nil, ErrTooFewPoints
	}
	seen := make(map[Point]int, len(points))
	for i, p := range points {
		if j, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: %v at indices %d and %d", ErrDuplicatePoint, p, j, i)
		}
		seen[p] = i
	}

	d.init(points)
	for i := range points {
		d.insert(i)
	}

	n := len(points)
	result := make([][3]int, 0, len(d.triangles))
	for _, t := range d.triangles {
		if t.v[0] >= n || t.v[1] >= n || t.v[2] >= n {
			continue
		}
		if tri := NewTriangle(points[t.v[0]], points[t.v[1]], points[t.v[2]]); math.Abs(tri.Area()) < 1e-9 {
			continue
		}
		result = append(result, t.v)
	}
	if len(result) == 0 && !collinear(points) {
		return nil, ErrEmptyTriangulation
	}
	return result, nil
}

// init creates the super triangle, its vertices appended after the input points.
func (d *Delaunay) init(points []Point) {
	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		minP = Point{Min(minP.X, p.X), Min(minP.Y, p.Y)}
		maxP = Point{Max(maxP.X, p.X), Max(maxP.Y, p.Y)}
	}
	delta := Max(maxP.X-minP.X, maxP.Y-minP.Y, 1)
	mid := Point{(minP.X + maxP.X) / 2, (minP.Y + maxP.Y) / 2}

	n := len(points)
	d.vertices = append(make([]Point, 0, n+3), points...)
	d.vertices = append(d.vertices,
		Point{mid.X - 20*delta, mid.Y - delta},
		Point{mid.X, mid.Y + 20*delta},
		Point{mid.X + 20*delta, mid.Y - delta},
	)
	d.triangles = append(d.triangles[:0], d.newNode(n, n+1, n+2))
}

func (d *Delaunay) newNode(a, b, c int) node {
	p0, p1, p2 := d.vertices[a], d.vertices[b], d.vertices[c]

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	m := p1.X*p1.X - p0.X*p0.X + p1.Y*p1.Y - p0.Y*p0.Y
	u := p2.X*p2.X - p0.X*p0.X + p2.Y*p2.Y - p0.Y*p0.Y
	s := 1 / (2 * (ax*by - ay*bx))

	var c0 circle
	c0.x = ((p2.Y-p0.Y)*m + (p0.Y-p1.Y)*u) * s
	c0.y = ((p0.X-p2.X)*m + (p1.X-p0.X)*u) * s
	dx, dy := p0.X-c0.x, p0.Y-c0.y
	c0.radius = dx*dx + dy*dy

	return node{v: [3]int{a, b, c}, circle: c0}
}

// inCircle reports whether p lies strictly inside the circumcircle. Points within
// a small relative tolerance of the circle count as outside, so co-circular points
// (regular grids) are resolved the same way by every triangle sharing the circle.
func (c circle) inCircle(p Point) bool {
	dx, dy := c.x-p.X, c.y-p.Y
	return dx*dx+dy*dy < c.radius*(1-1e-9)
}

func (d *Delaunay) insert(i int) {
	p := d.vertices[i]

	edges := make(map[edge]int)
	order := make([]edge, 0, 12)
	kept := d.triangles[:0:0]

	for _, t := range d.triangles {
		if !t.circle.inCircle(p) {
			kept = append(kept, t)
			continue
		}
		for _, e := range [3]edge{newEdge(t.v[0], t.v[1]), newEdge(t.v[1], t.v[2]), newEdge(t.v[2], t.v[0])} {
			if edges[e] == 0 {
				order = append(order, e)
			}
			edges[e]++
		}
	}

	// Edges shared by two removed triangles are interior to the hole.
	for _, e := range order {
		if edges[e] == 1 {
			kept = append(kept, d.newNode(e[0], e[1], i))
		}
	}
	d.triangles = kept
}

func collinear(points []Point) bool {
	a, b := points[0], points[1]
	for _, c := range points[2:] {
		if math.Abs(NewTriangle(a, b, c).Area()) > 1e-9 {
			return false
		}
	}
	return true
}
