package lowpoly

import "image"

// fill is an ImageSource returning a computed color for every pixel.
type fill struct {
	w, h  int
	color func(x, y int) RGB
}

func (f fill) Dimensions() (int, int) { return f.w, f.h }
func (f fill) Pixel(x, y int) RGB     { return f.color(x, y) }

func uniform(w, h int, c RGB) fill {
	return fill{w: w, h: h, color: func(int, int) RGB { return c }}
}

// halves is a source whose left half is black and right half white.
func halves(w, h int) fill {
	return fill{w: w, h: h, color: func(x, _ int) RGB {
		if x < w/2 {
			return RGB{}
		}
		return RGB{255, 255, 255}
	}}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	return cfg
}

func nrgba(w, h int, c RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, 0xff
	}
	return img
}
