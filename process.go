package lowpoly

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"
)

// Report describes a finished generation.
type Report struct {
	Index      int
	Population *Population
	// Points selected to seed the next generation.
	Points []Point
	// MeanFitness is the mean face fitness of Population.
	MeanFitness float64
	// SelectedFitness is the average fitness the selected members accumulated
	// in the rounds they were selected from.
	SelectedFitness float64
	Cache           CacheStats
	Generated       time.Duration
	Written         time.Duration
	Output          string
	// SaveErr is set when the rendered image could not be written.
	SaveErr error
}

// Resume restarts a run from the points selected by a previous generation.
type Resume struct {
	Index  int
	Points []Point
}

// Processor drives the whole optimization: seeding, the generation loop and
// writing one image per generation.
type Processor struct {
	Config

	// OutDir is where output-<n><Ext> files are written.
	OutDir string
	// Ext selects the output format, ".png" when empty.
	Ext          string
	Sink         ImageSink
	Triangulator Triangulator
	// GeoJSON also writes output-<n>.geojson for every generation.
	GeoJSON bool
	// Resume, when set, continues after the given generation instead of seeding a grid.
	Resume *Resume
	// OnGeneration is called after every generation, once its output is written.
	OnGeneration func(Report)
}

// OutputPath returns the path the image of generation n is written to.
func (p *Processor) OutputPath(n int) string {
	ext := p.Ext
	if ext == "" {
		ext = ".png"
	}
	return filepath.Join(p.OutDir, fmt.Sprintf("output-%d%s", n, ext))
}

// Process runs the configured number of generations over src. Generation 0 is
// the unmutated seed points; each following generation starts from the best points of
// the previous one. The context is checked between generations.
func (p *Processor) Process(ctx context.Context, src ImageSource) error {
	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	if p.Sink == nil {
		p.Sink = FileSink{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	opts := []Option{WithRand(rng)}
	if p.Triangulator != nil {
		opts = append(opts, WithTriangulator(p.Triangulator))
	}

	w, h := src.Dimensions()
	var (
		start  int
		points []Point
	)
	switch {
	case p.Resume != nil:
		start, points = p.Resume.Index+1, p.Resume.Points
	case cfg.Seeding == SeedEdges:
		points = EdgePoints(src, cfg.Segments, cfg.BlurRadius, cfg.EdgeThreshold, rng)
	default:
		points = GridPoints(w, h, cfg.Segments)
	}
	log := Logger().With("width", w, "height", h, "seed", seed)

	for i := start; i <= cfg.Generations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := time.Now()

		gen, err := NewGeneration(points, src, &cfg, append(opts, WithCache(NewFitnessCache()))...)
		if err != nil {
			return fmt.Errorf("generation %d: %w", i, err)
		}
		if i > 0 {
			if err := gen.Mutate(cfg.MutationsPerGeneration); err != nil {
				return fmt.Errorf("generation %d: %w", i, err)
			}
		}
		selected := gen.Select(cfg.TargetPoints())
		pop, err := gen.PopulationOf(selectionPoints(selected))
		if err != nil {
			return fmt.Errorf("generation %d: %w", i, err)
		}
		points = pop.Points

		_, mean := pop.Fitness()
		report := Report{
			Index:           i,
			Population:      pop,
			Points:          points,
			MeanFitness:     mean,
			SelectedFitness: MeanSelectionFitness(selected),
			Cache:           gen.Cache().Stats(),
			Generated:       time.Since(now),
			Output:          p.OutputPath(i),
		}

		now = time.Now()
		raster := gen.Render(pop)
		Draw(raster, pop.Faces, cfg.Wireframe, cfg.LineWidth, cfg.Noise)
		if err := p.Sink.Save(report.Output, raster); err != nil {
			report.SaveErr = err
			log.Warn("unable to save generation", "generation", i, "path", report.Output, "error", err)
		}
		if p.GeoJSON {
			path := filepath.Join(p.OutDir, fmt.Sprintf("output-%d.geojson", i))
			if err := WriteGeoJSON(path, pop); err != nil {
				log.Warn("unable to write geojson", "generation", i, "path", path, "error", err)
			}
		}
		report.Written = time.Since(now)

		log.Info("generation done",
			"generation", i,
			"faces", len(pop.Faces),
			"points", len(points),
			"mean_fitness", mean,
			"selected_fitness", report.SelectedFitness,
			"generated", report.Generated,
			"written", report.Written,
		)
		if p.OnGeneration != nil {
			p.OnGeneration(report)
		}
	}
	return nil
}
