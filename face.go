package lowpoly

// Face is a triangle of the mesh bound to the members owning its vertices.
type Face struct {
	// Members holds the member ids of the vertices, in the order of the
	// Triangle vertices A, B and C.
	Members  [3]int
	Triangle Triangle
	Color    RGB
	Fitness  float64
}

// Pixels collects the colors of the source pixels covered by the triangle.
func Pixels(src ImageSource, t Triangle) []Pixel {
	w, h := src.Dimensions()
	var pixels []Pixel
	t.Each(func(x, y int) {
		if x < w && y < h {
			pixels = append(pixels, PixelOf(src.Pixel(x, y)))
		}
	})
	return pixels
}

// Evaluate colors and scores a triangle, going through the cache when one is given.
func Evaluate(src ImageSource, t Triangle, cache *FitnessCache, cfg *Config) PixelGroup {
	compute := func() PixelGroup {
		return NewPixelGroup(Pixels(src, t), cfg)
	}
	if cache == nil {
		return compute()
	}
	return cache.GetOrCompute(t.A, t.B, t.C, compute)
}

// NewFace scores the triangle formed by the given members during a round
// and credits its fitness to each of them.
func NewFace(members [3]*Member, round int, src ImageSource, cache *FitnessCache, cfg *Config) *Face {
	t := NewTriangle(members[0].Point(round), members[1].Point(round), members[2].Point(round))
	group := Evaluate(src, t, cache, cfg)

	for _, m := range members {
		m.AddFitness(round, group.Fitness)
	}
	return &Face{
		Members:  [3]int{members[0].ID, members[1].ID, members[2].ID},
		Triangle: t,
		Color:    group.Color,
		Fitness:  group.Fitness,
	}
}
