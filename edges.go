package lowpoly

import "math/rand"

// EdgePoints seeds the first generation from the image edges instead of an
// even grid. The border points of the segments grid are always kept, so the
// mesh covers the whole image; the remaining segments² points are sampled
// among the pixels whose Sobel magnitude exceeds threshold, after a box blur
// of the given radius. When there are not enough edge pixels the interior
// grid points fill the gap.
func EdgePoints(src ImageSource, segments, blurRadius int, threshold float64, r *rand.Rand) []Point {
	w, h := src.Dimensions()
	grid := GridPoints(w, h, segments)
	fw, fh := float64(w), float64(h)

	var border, interior []Point
	for _, p := range grid {
		if p.X == 0 || p.Y == 0 || p.X == fw || p.Y == fh {
			border = append(border, p)
		} else {
			interior = append(interior, p)
		}
	}

	edges := sobel(boxBlur(luminance(src), blurRadius), threshold)
	var candidates []Point
	for y := 1; y < h; y++ {
		for x := 1; x < w; x++ {
			if edges.pix[y*w+x] > 0 {
				candidates = append(candidates, Point{float64(x), float64(y)})
			}
		}
	}

	points := append(make([]Point, 0, len(grid)), border...)
	seen := make(map[Point]struct{}, len(grid))
	for _, p := range border {
		seen[p] = struct{}{}
	}
	add := func(p Point) {
		if _, ok := seen[p]; !ok && len(points) < len(grid) {
			seen[p] = struct{}{}
			points = append(points, p)
		}
	}

	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, p := range candidates {
		add(p)
	}
	for _, p := range interior {
		add(p)
	}
	return points
}
