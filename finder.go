package lowpoly

import "github.com/sourcegraph/conc/pool"

// FaceFinder looks up the face containing a point. Consecutive lookups of
// neighbouring pixels tend to hit the same or nearby faces, so every search
// starts at the last hit and widens in both directions.
type FaceFinder struct {
	faces []*Face
	last  int
}

// NewFaceFinder creates a finder over faces.
func NewFaceFinder(faces []*Face) *FaceFinder {
	return &FaceFinder{faces: faces}
}

// Find returns the index of a face containing p, or false if there is none.
func (f *FaceFinder) Find(p Point) (int, bool) {
	n := len(f.faces)
	if n == 0 {
		return 0, false
	}
	if f.last >= n {
		f.last = 0
	}
	for i, j := f.last, f.last+1; i >= 0 || j < n; i, j = i-1, j+1 {
		if i >= 0 && f.faces[i].Triangle.Contains(p) {
			f.last = i
			return i, true
		}
		if j < n && f.faces[j].Triangle.Contains(p) {
			f.last = j
			return j, true
		}
	}
	return 0, false
}

// Color returns the color of the pixel at (x, y). When no face contains the
// pixel, which happens on shared edges because of floating point rounding, the
// lookup walks back toward the origin one neighbour at a time: up along the
// first column, left along the first row, diagonally elsewhere. SentinelMiss is
// returned once the origin has been tried without success.
func (f *FaceFinder) Color(x, y int) RGB {
	for {
		if i, ok := f.Find(Point{float64(x), float64(y)}); ok {
			return f.faces[i].Color
		}
		switch {
		case x == 0 && y == 0:
			return SentinelMiss
		case x == 0:
			y--
		case y == 0:
			x--
		default:
			x, y = x-1, y-1
		}
	}
}

// Rasterize paints every pixel of a width x height raster with the color of
// the face containing it. Rows are spread over workers goroutines when workers > 1.
func Rasterize(faces []*Face, width, height, workers int) *Raster {
	r := NewRaster(width, height)

	paint := func(top, bottom int) {
		finder := NewFaceFinder(faces)
		for y := top; y < bottom; y++ {
			for x := 0; x < width; x++ {
				r.Set(x, y, finder.Color(x, y))
			}
		}
	}

	if workers <= 1 {
		paint(0, height)
		return r
	}

	p := pool.New().WithMaxGoroutines(workers)
	band := Max(1, height/(workers*4))
	for top := 0; top < height; top += band {
		top, bottom := top, Min(top+band, height)
		p.Go(func() { paint(top, bottom) })
	}
	p.Wait()

	return r
}
