package lowpoly

import (
	"image/color"

	"github.com/fogleman/gg"
)

// Draw finishes a rasterized population: depending on the wireframe mode the
// triangle edges are stroked over the faces or drawn alone, and a grain noise
// is applied when noise is positive. The raster is updated in place.
func Draw(r *Raster, faces []*Face, wireframe int, lineWidth float64, noise int) {
	if wireframe != WithoutWireframe {
		var ctx *gg.Context
		if wireframe == WireframeOnly {
			ctx = gg.NewContext(r.Width, r.Height)
			ctx.SetRGB(1, 1, 1)
			ctx.Clear()
		} else {
			ctx = gg.NewContextForImage(r.Image())
		}
		ctx.SetLineWidth(lineWidth)

		for _, f := range faces {
			a, b, c := f.Triangle.A, f.Triangle.B, f.Triangle.C
			ctx.MoveTo(a.X, a.Y)
			ctx.LineTo(b.X, b.Y)
			ctx.LineTo(c.X, c.Y)
			ctx.ClosePath()

			if wireframe == WireframeOnly {
				ctx.SetColor(color.RGBA{R: f.Color.R, G: f.Color.G, B: f.Color.B, A: 255})
			} else {
				ctx.SetColor(color.RGBA{A: 20})
			}
			ctx.Stroke()
		}
		imageToRaster(ctx.Image(), r)
	}

	if noise > 0 {
		Noise(r, noise)
	}
}

// prng is the Park-Miller minimal standard generator. It is deterministic so
// the same raster always gets the same grain.
type prng struct {
	a, m, seed int
	div        float64
}

func newPRNG() *prng {
	return &prng{a: 16807, m: 0x7fffffff, seed: 1, div: 1.0 / 0x7fffffff}
}

func (p *prng) next() float64 {
	lo := p.a * (p.seed & 0xffff)
	hi := p.a * (p.seed >> 16)
	lo += (hi & 0x7fff) << 16
	if lo > p.m {
		lo &= p.m
		lo++
	}
	lo += hi >> 15
	if lo > p.m {
		lo &= p.m
		lo++
	}
	p.seed = lo
	return float64(lo) * p.div
}

// Noise applies a grain filter to the raster, similar to a film grain effect.
func Noise(r *Raster, amount int) {
	rnd := newPRNG()
	for x := 0; x < r.Width; x++ {
		for y := 0; y < r.Height; y++ {
			noise := (rnd.next() - 0.1) * float64(amount)
			c := PixelOf(r.At(x, y))
			// Leave the pixel alone when a channel would overflow.
			if c[0]+noise < 255 && c[1]+noise < 255 && c[2]+noise < 255 {
				c = Pixel{c[0] + noise, c[1] + noise, c[2] + noise}
			}
			r.Set(x, y, c.RGB())
		}
	}
}
