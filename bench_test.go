package lowpoly

import (
	"math/rand"
	"testing"
)

func benchSource() ImageSource {
	return fill{w: 320, h: 240, color: func(x, y int) RGB {
		return RGB{uint8(x * 255 / 320), uint8(y * 255 / 240), uint8((x + y) % 256)}
	}}
}

func BenchmarkGeneration(b *testing.B) {
	src := benchSource()
	cfg := DefaultConfig()
	cfg.Segments = 15
	points := GridPoints(320, 240, cfg.Segments)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gen, err := NewGeneration(points, src, &cfg, WithRand(rand.New(rand.NewSource(int64(i)+1))))
		if err != nil {
			b.Fatalf("Failed creating the generation: %v", err)
		}
		if err := gen.Mutate(cfg.MutationsPerGeneration); err != nil {
			b.Fatalf("Failed mutating the generation: %v", err)
		}
		if _, err := gen.BestPopulation(); err != nil {
			b.Fatalf("Failed selecting the best population: %v", err)
		}
	}
}

func BenchmarkRasterize(b *testing.B) {
	cfg := DefaultConfig()
	cfg.Segments = 15
	gen, err := NewGeneration(GridPoints(320, 240, cfg.Segments), benchSource(), &cfg)
	if err != nil {
		b.Skipf("Failed creating the generation: %v", err)
	}
	faces := gen.Populations()[0].Faces

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Rasterize(faces, 320, 240, 1)
	}
}
