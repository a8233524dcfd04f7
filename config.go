package lowpoly

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Wireframe modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// Seeding strategies of the first generation.
const (
	SeedGrid  = "grid"
	SeedEdges = "edges"
)

// RewardTier grants Multiplier to a face whose largest color bin holds more
// than Share of its pixels.
type RewardTier struct {
	Share      float64 `yaml:"share"`
	Multiplier float64 `yaml:"multiplier"`
}

// Config holds every tunable of the optimization.
type Config struct {
	// Segments is the number of grid points per axis of the first generation.
	// The number of points kept after each selection is Segments².
	Segments               int     `yaml:"segments"`
	Generations            int     `yaml:"generations"`
	MutationsPerGeneration int     `yaml:"mutations_per_generation"`
	MutationRate           float64 `yaml:"mutation_rate"`
	MutationDeviation      float64 `yaml:"mutation_deviation"`

	// ClusterDistance is the squared RGB distance under which a pixel joins a bin.
	ClusterDistance float64 `yaml:"cluster_distance"`
	// DominantBinShare is the share of pixels the largest bin must hold for its
	// mean to be used as the face color on its own.
	DominantBinShare float64 `yaml:"dominant_bin_share"`
	// SubstantialBinShare is the share of pixels a bin needs to count as substantial.
	SubstantialBinShare float64 `yaml:"substantial_bin_share"`
	// MinGroupSize is the pixel count under which a face has no fitness.
	MinGroupSize    int     `yaml:"min_group_size"`
	DistanceFloor   float64 `yaml:"distance_floor"`
	DistanceCeiling float64 `yaml:"distance_ceiling"`

	// RewardTiers are checked in order when several bins are substantial;
	// the first tier whose share is exceeded applies, otherwise the multiplier is 1.
	RewardTiers []RewardTier `yaml:"reward_tiers"`

	// Workers > 1 scores faces and rasterizes rows concurrently.
	Workers int `yaml:"workers"`
	// Seed of the random source; zero picks a time based seed.
	Seed int64 `yaml:"seed"`

	// Seeding is SeedGrid (the default when empty) or SeedEdges.
	Seeding       string  `yaml:"seeding"`
	BlurRadius    int     `yaml:"blur_radius"`
	EdgeThreshold float64 `yaml:"edge_threshold"`

	Wireframe int     `yaml:"wireframe"`
	LineWidth float64 `yaml:"line_width"`
	Noise     int     `yaml:"noise"`
}

// DefaultConfig returns the settings the tool runs with when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Segments:               35,
		Generations:            20,
		MutationsPerGeneration: 10,
		MutationRate:           0.6,
		MutationDeviation:      10,
		ClusterDistance:        150,
		DominantBinShare:       0.95,
		SubstantialBinShare:    0.01,
		MinGroupSize:           10,
		DistanceFloor:          10,
		DistanceCeiling:        1000,
		RewardTiers: []RewardTier{
			{Share: 0.9, Multiplier: 100},
			{Share: 0.75, Multiplier: 10},
		},
		Workers:       1,
		Seeding:       SeedGrid,
		BlurRadius:    2,
		EdgeThreshold: 20,
		LineWidth:     1,
	}
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks that the settings can drive a run.
func (c *Config) Validate() error {
	switch {
	case c.Segments < 2:
		return fmt.Errorf("%w: segments must be at least 2, got %d", ErrInvalidConfig, c.Segments)
	case c.Generations < 0:
		return fmt.Errorf("%w: negative generation count %d", ErrInvalidConfig, c.Generations)
	case c.MutationsPerGeneration < 0:
		return fmt.Errorf("%w: negative mutation count %d", ErrInvalidConfig, c.MutationsPerGeneration)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("%w: mutation rate %v outside [0, 1]", ErrInvalidConfig, c.MutationRate)
	case c.MutationDeviation < 0:
		return fmt.Errorf("%w: negative mutation deviation", ErrInvalidConfig)
	case c.ClusterDistance <= 0:
		return fmt.Errorf("%w: cluster distance must be positive", ErrInvalidConfig)
	case c.DominantBinShare <= 0 || c.DominantBinShare > 1:
		return fmt.Errorf("%w: dominant bin share %v outside (0, 1]", ErrInvalidConfig, c.DominantBinShare)
	case c.SubstantialBinShare < 0 || c.SubstantialBinShare >= 1:
		return fmt.Errorf("%w: substantial bin share %v outside [0, 1)", ErrInvalidConfig, c.SubstantialBinShare)
	case c.MinGroupSize < 0:
		return fmt.Errorf("%w: negative minimum group size %d", ErrInvalidConfig, c.MinGroupSize)
	case c.DistanceFloor <= 0 || c.DistanceCeiling < c.DistanceFloor:
		return fmt.Errorf("%w: distance floor %v and ceiling %v", ErrInvalidConfig, c.DistanceFloor, c.DistanceCeiling)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	case c.Seeding != "" && c.Seeding != SeedGrid && c.Seeding != SeedEdges:
		return fmt.Errorf("%w: unknown seeding %q", ErrInvalidConfig, c.Seeding)
	case c.BlurRadius < 0:
		return fmt.Errorf("%w: negative blur radius", ErrInvalidConfig)
	case c.Wireframe < WithoutWireframe || c.Wireframe > WireframeOnly:
		return fmt.Errorf("%w: unknown wireframe mode %d", ErrInvalidConfig, c.Wireframe)
	case c.LineWidth <= 0:
		return fmt.Errorf("%w: line width must be positive, got %v", ErrInvalidConfig, c.LineWidth)
	case c.Noise < 0:
		return fmt.Errorf("%w: negative noise %d", ErrInvalidConfig, c.Noise)
	}
	return nil
}

// TargetPoints is the number of points carried from one generation to the next.
func (c *Config) TargetPoints() int {
	return c.Segments * c.Segments
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}
