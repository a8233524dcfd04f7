package lowpoly

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/exp/constraints"
)

// ImgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func ImgToNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && bounds.Min == (image.Point{}) {
		return src
	}
	dst := image.NewNRGBA(bounds.Sub(bounds.Min))

	switch src := img.(type) {
	case *image.YCbCr:
		for y := 0; y < dst.Rect.Dy(); y++ {
			di := dst.PixOffset(0, y)
			for x := 0; x < dst.Rect.Dx(); x++ {
				sx, sy := bounds.Min.X+x, bounds.Min.Y+y
				yi, ci := src.YOffset(sx, sy), src.COffset(sx, sy)
				r, g, b := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	}
	return dst
}

// rasterToNRGBA expands a packed RGB raster to an opaque NRGBA image.
func rasterToNRGBA(r *Raster) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		dst.Pix[j+0] = r.Pix[i+0]
		dst.Pix[j+1] = r.Pix[i+1]
		dst.Pix[j+2] = r.Pix[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

// imageToRaster packs an image of the raster's size into it, dropping alpha.
func imageToRaster(img image.Image, r *Raster) {
	src := ImgToNRGBA(img)
	for i, j := 0, 0; i < len(r.Pix); i, j = i+3, j+4 {
		r.Pix[i+0] = src.Pix[j+0]
		r.Pix[i+1] = src.Pix[j+1]
		r.Pix[i+2] = src.Pix[j+2]
	}
}

// Min returns the smallest value of the provided numbers.
func Min[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value of the provided numbers.
func Max[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}

// clamp limits v to the [lo, hi] range.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	return Max(lo, Min(v, hi))
}
