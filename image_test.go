package lowpoly

import (
	"path/filepath"
	"testing"
)

func TestPicture(t *testing.T) {
	c := RGB{10, 20, 30}
	p := NewPicture(nrgba(6, 4, c))
	if w, h := p.Dimensions(); w != 6 || h != 4 {
		t.Errorf("dimensions = %dx%d, want 6x4", w, h)
	}
	if got := p.Pixel(5, 3); got != c {
		t.Errorf("pixel = %v, want %v", got, c)
	}
}

func TestRasterSetAt(t *testing.T) {
	r := NewRaster(3, 2)
	c := RGB{1, 2, 3}
	r.Set(2, 1, c)
	if got := r.At(2, 1); got != c {
		t.Errorf("At(2,1) = %v, want %v", got, c)
	}
	if got := r.At(0, 0); got != (RGB{}) {
		t.Errorf("At(0,0) = %v, want black", got)
	}
	img := r.Image()
	if px := img.NRGBAAt(2, 1); px.R != 1 || px.G != 2 || px.B != 3 || px.A != 0xff {
		t.Errorf("image pixel = %v", px)
	}
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	r := NewRaster(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r.Set(x, y, RGB{200, 100, 50})
		}
	}

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "nested", "output"+ext)
			if err := (FileSink{}).Save(path, r); err != nil {
				t.Fatalf("save: %v", err)
			}
			pic, err := Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if got := pic.Pixel(3, 3); got != (RGB{200, 100, 50}) {
				t.Errorf("decoded pixel = %v", got)
			}
		})
	}

	t.Run(".jpg", func(t *testing.T) {
		path := filepath.Join(dir, "output.jpg")
		if err := (FileSink{Quality: 95}).Save(path, r); err != nil {
			t.Fatalf("save: %v", err)
		}
		if _, err := Open(path); err != nil {
			t.Fatalf("open: %v", err)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := (FileSink{}).Save(filepath.Join(dir, "output.xyz"), r); err == nil {
			t.Error("expected an error for an unknown extension")
		}
	})
}
