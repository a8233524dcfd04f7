package lowpoly

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Register the decoders for the supported input formats.
	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// RGB is an 8 bit per channel opaque color.
type RGB struct {
	R, G, B uint8
}

var (
	// SentinelEmpty is the color of a face which covers no pixel.
	SentinelEmpty = RGB{255, 0, 255}
	// SentinelMiss is the color of a pixel no face could be found for.
	SentinelMiss = RGB{0, 255, 255}
)

// ImageSource provides read access to the pixels being approximated.
type ImageSource interface {
	Dimensions() (width, height int)
	Pixel(x, y int) RGB
}

// ImageSink persists a rendered raster.
type ImageSink interface {
	Save(path string, r *Raster) error
}

// Picture is an ImageSource backed by a decoded image.
type Picture struct {
	img *image.NRGBA
}

// NewPicture wraps img; the image is converted to NRGBA with min-point at (0, 0).
func NewPicture(img image.Image) *Picture {
	return &Picture{img: ImgToNRGBA(img)}
}

// Decode reads an image in any of the registered formats (png, jpeg, gif, bmp, tiff, webp).
func Decode(r io.Reader) (*Picture, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return NewPicture(src), nil
}

// Open decodes the image file found at path.
func Open(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Dimensions returns the picture width and height.
func (p *Picture) Dimensions() (int, int) {
	return p.img.Rect.Dx(), p.img.Rect.Dy()
}

// Pixel returns the color found at (x, y).
func (p *Picture) Pixel(x, y int) RGB {
	i := p.img.PixOffset(x, y)
	return RGB{p.img.Pix[i], p.img.Pix[i+1], p.img.Pix[i+2]}
}

// Raster is a packed, row-major RGB pixel buffer.
type Raster struct {
	Width, Height int
	Pix           []uint8
}

// NewRaster allocates a black raster.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Set colors the pixel at (x, y).
func (r *Raster) Set(x, y int, c RGB) {
	i := (y*r.Width + x) * 3
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = c.R, c.G, c.B
}

// At returns the color of the pixel at (x, y).
func (r *Raster) At(x, y int) RGB {
	i := (y*r.Width + x) * 3
	return RGB{r.Pix[i], r.Pix[i+1], r.Pix[i+2]}
}

// Image converts the raster into an opaque *image.NRGBA.
func (r *Raster) Image() *image.NRGBA {
	return rasterToNRGBA(r)
}

// FileSink writes rasters to disk, choosing the encoder from the file extension.
type FileSink struct {
	// Quality is the jpeg encoding quality; zero means jpeg.DefaultQuality.
	Quality int
}

// Save encodes r into the file at path.
func (s FileSink) Save(path string, r *Raster) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.encode(f, strings.ToLower(filepath.Ext(path)), r); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (s FileSink) encode(w io.Writer, ext string, r *Raster) error {
	img := r.Image()
	switch ext {
	case ".jpg", ".jpeg":
		q := s.Quality
		if q == 0 {
			q = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case ".png", "":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}
