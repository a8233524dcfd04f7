package lowpoly

import "math"

// gradient is a single channel float image.
type gradient struct {
	width, height int
	pix           []float64
}

func (g *gradient) at(x, y int) float64 {
	x = clamp(x, 0, g.width-1)
	y = clamp(y, 0, g.height-1)
	return g.pix[y*g.width+x]
}

// luminance converts the source to grayscale using the Rec. 601 weights.
func luminance(src ImageSource) *gradient {
	w, h := src.Dimensions()
	g := &gradient{width: w, height: h, pix: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.Pixel(x, y)
			g.pix[y*w+x] = float64(c.R)*0.299 + float64(c.G)*0.587 + float64(c.B)*0.114
		}
	}
	return g
}

// boxBlur averages every pixel over a (2*radius+1)² window, clamping at the borders.
func boxBlur(g *gradient, radius int) *gradient {
	if radius <= 0 {
		return g
	}
	dst := &gradient{width: g.width, height: g.height, pix: make([]float64, len(g.pix))}
	side := float64(2*radius + 1)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum float64
			for row := -radius; row <= radius; row++ {
				for col := -radius; col <= radius; col++ {
					sum += g.at(x+col, y+row)
				}
			}
			dst.pix[y*g.width+x] = sum / (side * side)
		}
	}
	return dst
}

var (
	kernelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	kernelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobel returns the gradient magnitude of g, zeroing values under threshold.
func sobel(g *gradient, threshold float64) *gradient {
	dst := &gradient{width: g.width, height: g.height, pix: make([]float64, len(g.pix))}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sumX, sumY float64
			for row := 0; row < 3; row++ {
				for col := 0; col < 3; col++ {
					v := g.at(x+col-1, y+row-1)
					sumX += v * kernelX[row][col]
					sumY += v * kernelY[row][col]
				}
			}
			if m := math.Hypot(sumX, sumY); m > threshold {
				dst.pix[y*g.width+x] = m
			}
		}
	}
	return dst
}
