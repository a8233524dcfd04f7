package lowpoly

import "testing"

func repeat(c RGB, n int) []Pixel {
	pixels := make([]Pixel, n)
	for i := range pixels {
		pixels[i] = PixelOf(c)
	}
	return pixels
}

// jitter alternates every channel d above and below 128.
func jitter(n int, d float64) []Pixel {
	pixels := make([]Pixel, n)
	for i := range pixels {
		v := 128 + d
		if i%2 == 1 {
			v = 128 - d
		}
		pixels[i] = Pixel{v, v, v}
	}
	return pixels
}

func TestPixelGroupEmpty(t *testing.T) {
	cfg := DefaultConfig()
	g := NewPixelGroup(nil, &cfg)
	if g.Color != SentinelEmpty {
		t.Errorf("empty group color = %v, want %v", g.Color, SentinelEmpty)
	}
	if g.Fitness != 0 {
		t.Errorf("empty group fitness = %v, want 0", g.Fitness)
	}
}

func TestPixelGroupUniform(t *testing.T) {
	cfg := DefaultConfig()
	c := RGB{12, 200, 99}
	g := NewPixelGroup(repeat(c, 100), &cfg)
	if g.Color != c {
		t.Errorf("color = %v, want %v", g.Color, c)
	}
	if g.Fitness != 100 {
		t.Errorf("fitness = %v, want the pixel count 100", g.Fitness)
	}
}

func TestPixelGroupTooSmall(t *testing.T) {
	cfg := DefaultConfig()
	c := RGB{1, 2, 3}
	g := NewPixelGroup(repeat(c, cfg.MinGroupSize-1), &cfg)
	if g.Fitness != 0 {
		t.Errorf("fitness = %v, want 0 under the minimum group size", g.Fitness)
	}
	if g.Color != c {
		t.Errorf("color = %v, want %v", g.Color, c)
	}
}

func TestPixelGroupDominantBin(t *testing.T) {
	cfg := DefaultConfig()
	dominant, other := RGB{10, 10, 10}, RGB{250, 250, 250}
	pixels := append(repeat(dominant, 96), repeat(other, 4)...)

	g := NewPixelGroup(pixels, &cfg)
	if g.Color != dominant {
		t.Errorf("color = %v, want the dominant bin color %v", g.Color, dominant)
	}
	// Two substantial bins, the largest holding more than 90% of the pixels.
	if want := 100.0 / 4; g.Fitness != want {
		t.Errorf("fitness = %v, want %v", g.Fitness, want)
	}
}

func TestPixelGroupMixedColor(t *testing.T) {
	cfg := DefaultConfig()
	pixels := append(repeat(RGB{}, 50), repeat(RGB{255, 255, 255}, 50)...)

	// 95 pixels are averaged: 50 black ones then 45 white ones.
	g := NewPixelGroup(pixels, &cfg)
	if want := (RGB{120, 120, 120}); g.Color != want {
		t.Errorf("color = %v, want %v", g.Color, want)
	}
}

func TestPixelGroupFitnessOrdering(t *testing.T) {
	cfg := DefaultConfig()
	const n = 100

	groups := []struct {
		name   string
		pixels []Pixel
	}{
		{"uniform", repeat(RGB{128, 128, 128}, n)},
		{"jitter 1", jitter(n, 1)},
		{"jitter 2", jitter(n, 2)},
		{"two clusters", append(repeat(RGB{}, n/2), repeat(RGB{255, 255, 255}, n/2)...)},
	}

	prev := NewPixelGroup(groups[0].pixels, &cfg).Fitness
	for _, g := range groups[1:] {
		f := NewPixelGroup(g.pixels, &cfg).Fitness
		if f >= prev {
			t.Errorf("%s fitness %v should be lower than the previous group's %v", g.name, f, prev)
		}
		if f <= 0 {
			t.Errorf("%s fitness %v should stay positive", g.name, f)
		}
		prev = f
	}
}

func TestDistanceFactor(t *testing.T) {
	cfg := DefaultConfig()
	if f := distanceFactor(0, &cfg); f != 1 {
		t.Errorf("factor at 0 = %v, want 1", f)
	}
	if f := distanceFactor(cfg.DistanceFloor, &cfg); f != 1 {
		t.Errorf("factor at the floor = %v, want 1", f)
	}

	prev := 1.0
	for d := cfg.DistanceFloor + 1; d <= cfg.DistanceCeiling; d += 37 {
		f := distanceFactor(d, &cfg)
		if f >= prev {
			t.Fatalf("factor not decreasing at %v: %v >= %v", d, f, prev)
		}
		prev = f
	}
	if a, b := distanceFactor(cfg.DistanceCeiling, &cfg), distanceFactor(cfg.DistanceCeiling*10, &cfg); a != b {
		t.Errorf("factor past the ceiling = %v, want %v", b, a)
	}
}
