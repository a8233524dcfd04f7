package lowpoly

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// Population is the mesh obtained by triangulating the points of one round.
type Population struct {
	Round  int
	Points []Point
	Faces  []*Face
}

// Fitness returns the summed and the mean face fitness.
func (p *Population) Fitness() (sum, mean float64) {
	for _, f := range p.Faces {
		sum += f.Fitness
	}
	if len(p.Faces) > 0 {
		mean = sum / float64(len(p.Faces))
	}
	return sum, mean
}

// Option customizes a Generation.
type Option func(*Generation)

// WithTriangulator replaces the default Delaunay triangulator.
func WithTriangulator(t Triangulator) Option {
	return func(g *Generation) { g.tri = t }
}

// WithRand sets the random source driving the mutations.
func WithRand(r *rand.Rand) Option {
	return func(g *Generation) { g.rng = r }
}

// WithCache shares a fitness cache with the generation.
func WithCache(c *FitnessCache) Option {
	return func(g *Generation) { g.cache = c }
}

// Generation evolves a set of members over a series of mutation rounds.
// Every round is triangulated and scored into a Population; the populations
// are kept so the best faces of the whole generation can be selected.
type Generation struct {
	cfg   *Config
	src   ImageSource
	tri   Triangulator
	rng   *rand.Rand
	cache *FitnessCache

	width, height float64
	members       []*Member
	populations   []*Population
}

// NewGeneration seeds one member per point and scores the initial round.
// Member ids are the indices of points.
func NewGeneration(points []Point, src ImageSource, cfg *Config, opts ...Option) (*Generation, error) {
	w, h := src.Dimensions()
	g := &Generation{
		cfg:    cfg,
		src:    src,
		width:  float64(w),
		height: float64(h),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.tri == nil {
		g.tri = &Delaunay{}
	}
	if g.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
	if g.cache == nil {
		g.cache = NewFitnessCache()
	}

	g.members = make([]*Member, len(points))
	for i, p := range points {
		g.members[i] = NewMember(i, p, g.width, g.height)
	}
	if err := g.score(g.members, 0); err != nil {
		return nil, err
	}
	return g, nil
}

// Members returns the members of the generation, indexed by id.
func (g *Generation) Members() []*Member {
	return g.members
}

// Populations returns the populations scored so far, indexed by round.
func (g *Generation) Populations() []*Population {
	return g.populations
}

// Cache returns the fitness cache of the generation.
func (g *Generation) Cache() *FitnessCache {
	return g.cache
}

// Mutate runs n mutation rounds followed by the merge round.
func (g *Generation) Mutate(n int) error {
	for i := 0; i < n; i++ {
		round := -1
		claimed := g.baseClaims()
		for _, m := range g.members {
			round = m.Mutate(g.rng, g.cfg.MutationRate, g.cfg.MutationDeviation)
			g.claim(claimed, m, round)
		}
		if err := g.score(g.members, round); err != nil {
			return err
		}
	}

	round := -1
	claimed := g.baseClaims()
	for _, m := range g.members {
		round = m.Merge()
		g.claim(claimed, m, round)
	}
	return g.score(g.members, round)
}

func (g *Generation) baseClaims() map[Point]struct{} {
	claimed := make(map[Point]struct{}, len(g.members))
	for _, m := range g.members {
		claimed[m.Base()] = struct{}{}
	}
	return claimed
}

// claim reserves the point the member moved to during round. A point already
// taken by another member would make the triangulator input ambiguous, so the
// member stays on its base point for that round instead.
func (g *Generation) claim(claimed map[Point]struct{}, m *Member, round int) {
	p := m.Point(round)
	if p == m.Base() {
		return
	}
	if _, ok := claimed[p]; ok {
		m.Revert(round)
		return
	}
	claimed[p] = struct{}{}
}

// score triangulates the points of the members for the given round, evaluates
// every face and appends the resulting population.
func (g *Generation) score(members []*Member, round int) error {
	pop, err := g.triangulate(members, round)
	if err != nil {
		return err
	}
	g.populations = append(g.populations, pop)

	stats := g.cache.Stats()
	_, mean := pop.Fitness()
	Logger().Debug("round scored",
		"round", round,
		"faces", len(pop.Faces),
		"mean_fitness", mean,
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
	)
	return nil
}

func (g *Generation) triangulate(members []*Member, round int) (*Population, error) {
	points := make([]Point, len(members))
	for i, m := range members {
		points[i] = m.Point(round)
	}

	tris, err := g.tri.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("triangulate round %d: %w", round, err)
	}
	if len(tris) == 0 {
		return nil, fmt.Errorf("round %d, %d points: %w", round, len(points), ErrEmptyTriangulation)
	}
	for _, t := range tris {
		for k, i := range t {
			if i < 0 || i >= len(members) || i == t[(k+1)%3] {
				return nil, fmt.Errorf("%w: triangle %v over %d points", ErrUnresolvedVertex, t, len(members))
			}
		}
	}

	faces := make([]*Face, len(tris))
	build := func(i int) {
		t := tris[i]
		faces[i] = NewFace([3]*Member{members[t[0]], members[t[1]], members[t[2]]}, round, g.src, g.cache, g.cfg)
	}

	if g.cfg.Workers <= 1 {
		for i := range tris {
			build(i)
		}
	} else {
		p := pool.New().WithMaxGoroutines(g.cfg.Workers)
		for i := range tris {
			i := i
			p.Go(func() { build(i) })
		}
		p.Wait()
	}

	return &Population{Round: round, Points: points, Faces: faces}, nil
}

// Selection is a member picked to seed the next generation, at the point it had
// in the face it was selected through. Fitness is what the member accumulated
// during that face's round.
type Selection struct {
	ID      int
	Point   Point
	Fitness float64
}

// Select walks the faces of all populations from the fittest down and collects
// their members until target distinct members are found. A member appears
// once, and so does a coordinate.
func (g *Generation) Select(target int) []Selection {
	type roundFace struct {
		round int
		face  *Face
	}
	var faces []roundFace
	for _, pop := range g.populations {
		for _, f := range pop.Faces {
			faces = append(faces, roundFace{pop.Round, f})
		}
	}
	slices.SortStableFunc(faces, func(a, b roundFace) int {
		return cmp.Compare(b.face.Fitness, a.face.Fitness)
	})

	selected := make([]Selection, 0, target)
	seenID := make(map[int]struct{}, target)
	seenPoint := make(map[Point]struct{}, target)
	for _, rf := range faces {
		for k, p := range rf.face.Triangle.Vertices() {
			if len(selected) >= target {
				return selected
			}
			id := rf.face.Members[k]
			if _, ok := seenID[id]; ok {
				continue
			}
			if _, ok := seenPoint[p]; ok {
				continue
			}
			seenID[id] = struct{}{}
			seenPoint[p] = struct{}{}

			s := Selection{ID: id, Point: p}
			if id >= 0 && id < len(g.members) {
				s.Fitness = g.members[id].Fitness(rf.round)
			}
			selected = append(selected, s)
		}
	}
	return selected
}

// MeanSelectionFitness returns the average accumulated fitness of the selected members.
func MeanSelectionFitness(selected []Selection) float64 {
	if len(selected) == 0 {
		return 0
	}
	var sum float64
	for _, s := range selected {
		sum += s.Fitness
	}
	return sum / float64(len(selected))
}

func selectionPoints(selected []Selection) []Point {
	points := make([]Point, len(selected))
	for i, s := range selected {
		points[i] = s.Point
	}
	return points
}

// BestPoints returns the points of Select(target).
func (g *Generation) BestPoints(target int) []Point {
	return selectionPoints(g.Select(target))
}

// BestPopulation triangulates and scores the best TargetPoints points of the generation.
func (g *Generation) BestPopulation() (*Population, error) {
	return g.PopulationOf(g.BestPoints(g.cfg.TargetPoints()))
}

// PopulationOf triangulates and scores points as fresh members, outside the
// rounds of the generation.
func (g *Generation) PopulationOf(points []Point) (*Population, error) {
	members := make([]*Member, len(points))
	for i, p := range points {
		members[i] = NewMember(i, p, g.width, g.height)
	}
	return g.triangulate(members, 0)
}

// Render rasterizes the population at the size of the source image.
func (g *Generation) Render(pop *Population) *Raster {
	return Rasterize(pop.Faces, int(g.width), int(g.height), g.cfg.Workers)
}
