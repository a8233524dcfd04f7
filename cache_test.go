package lowpoly

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFitnessCacheVertexOrder(t *testing.T) {
	c := NewFitnessCache()
	a, b, d := Pt(0, 0), Pt(5, 1), Pt(2, 7)

	var calls int
	compute := func() PixelGroup {
		calls++
		return PixelGroup{Color: RGB{1, 2, 3}, Fitness: 42}
	}

	orders := [][3]Point{{a, b, d}, {a, d, b}, {b, a, d}, {b, d, a}, {d, a, b}, {d, b, a}}
	for _, o := range orders {
		g := c.GetOrCompute(o[0], o[1], o[2], compute)
		if g.Fitness != 42 {
			t.Fatalf("fitness for %v = %v, want 42", o, g.Fitness)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", c.Len())
	}
	if s := c.Stats(); s.Misses != 1 || s.Hits != 5 {
		t.Errorf("stats = %+v, want 1 miss and 5 hits", s)
	}
}

func TestFitnessCacheDistinctTriangles(t *testing.T) {
	c := NewFitnessCache()
	c.GetOrCompute(Pt(0, 0), Pt(1, 0), Pt(0, 1), func() PixelGroup { return PixelGroup{Fitness: 1} })
	g := c.GetOrCompute(Pt(0, 0), Pt(1, 0), Pt(1, 1), func() PixelGroup { return PixelGroup{Fitness: 2} })
	if g.Fitness != 2 {
		t.Errorf("fitness = %v, want 2", g.Fitness)
	}
	if c.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", c.Len())
	}
}

func TestFitnessCacheConcurrent(t *testing.T) {
	c := NewFitnessCache()
	var calls atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pts := [3]Point{Pt(1, 1), Pt(9, 2), Pt(4, 8)}
			a, b, d := pts[i%3], pts[(i+1)%3], pts[(i+2)%3]
			c.GetOrCompute(a, b, d, func() PixelGroup {
				calls.Add(1)
				return PixelGroup{Fitness: 7}
			})
		}(i)
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("compute called %d times, want 1", n)
	}
	if s := c.Stats(); s.Hits+s.Misses != 64 || s.Misses != 1 {
		t.Errorf("stats = %+v, want 1 miss out of 64 lookups", s)
	}
}
