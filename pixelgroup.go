package lowpoly

import (
	"math"
	"slices"
)

// Pixel is a color with float channels in the [0, 255] range.
type Pixel [3]float64

// PixelOf converts an RGB color to a Pixel.
func PixelOf(c RGB) Pixel {
	return Pixel{float64(c.R), float64(c.G), float64(c.B)}
}

// RGB truncates the channels back to bytes.
func (p Pixel) RGB() RGB {
	return RGB{
		R: uint8(clamp(p[0], 0, 255)),
		G: uint8(clamp(p[1], 0, 255)),
		B: uint8(clamp(p[2], 0, 255)),
	}
}

// sqDistance returns the squared euclidean distance between two colors.
func sqDistance(a, b Pixel) float64 {
	dr, dg, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dr*dr + dg*dg + db*db
}

// bin is a color cluster with a running mean.
type bin struct {
	mean   Pixel
	values []Pixel
}

func newBin(p Pixel) *bin {
	return &bin{mean: p, values: []Pixel{p}}
}

func (b *bin) add(p Pixel) {
	b.values = append(b.values, p)
	n := float64(len(b.values))
	for i := range b.mean {
		b.mean[i] += (p[i] - b.mean[i]) / n
	}
}

func (b *bin) count() int { return len(b.values) }

// PixelGroup is the outcome of clustering the pixels covered by a face:
// the color the face is painted with and how well that color represents them.
type PixelGroup struct {
	Color   RGB
	Fitness float64
}

// NewPixelGroup clusters pixels in arrival order and scores the result.
//
// Every pixel joins the first bin whose mean lies within cfg.ClusterDistance,
// or opens a new bin. When the largest bin holds at least cfg.DominantBinShare
// of the pixels its mean is the face color; otherwise the color is averaged over
// that share of pixels taken from the bins, largest bin first.
func NewPixelGroup(pixels []Pixel, cfg *Config) PixelGroup {
	if len(pixels) == 0 {
		return PixelGroup{Color: SentinelEmpty}
	}

	bins := []*bin{newBin(pixels[0])}
next:
	for _, p := range pixels[1:] {
		for _, b := range bins {
			if sqDistance(b.mean, p) < cfg.ClusterDistance {
				b.add(p)
				continue next
			}
		}
		bins = append(bins, newBin(p))
	}

	slices.SortStableFunc(bins, func(a, b *bin) int {
		return b.count() - a.count()
	})

	total := len(pixels)
	subset := bins[0].values
	mean := bins[0].mean
	if limit := int(float64(total) * cfg.DominantBinShare); bins[0].count() < limit {
		subset = make([]Pixel, 0, limit)
		for _, b := range bins {
			if len(subset)+b.count() >= limit {
				subset = append(subset, b.values[:limit-len(subset)]...)
				break
			}
			subset = append(subset, b.values...)
		}
		mean = meanOf(subset)
	}

	var distance float64
	for _, p := range subset {
		distance += sqDistance(mean, p)
	}

	return PixelGroup{
		Color:   mean.RGB(),
		Fitness: groupFitness(bins, total, distance, cfg),
	}
}

// meanOf computes the incremental mean of the pixels.
func meanOf(pixels []Pixel) Pixel {
	var mean Pixel
	for n, p := range pixels {
		for i := range mean {
			mean[i] += (p[i] - mean[i]) / float64(n+1)
		}
	}
	return mean
}

// groupFitness rewards faces dominated by a single color and punishes faces
// spread over several substantial bins or far from their mean color.
// The bins must be sorted by descending size.
func groupFitness(bins []*bin, total int, distance float64, cfg *Config) float64 {
	if total < cfg.MinGroupSize {
		return 0
	}

	threshold := int(float64(total) * cfg.SubstantialBinShare)
	substantial := 0
	for _, b := range bins {
		if b.count() > threshold {
			substantial++
		}
	}
	if substantial == 0 {
		return 0
	}

	multiplier := 1.0
	if substantial == 1 {
		multiplier = float64(total)
	} else {
		share := float64(bins[0].count()) / float64(total)
		for _, tier := range cfg.RewardTiers {
			if share > tier.Share {
				multiplier = tier.Multiplier
				break
			}
		}
	}

	return multiplier / float64(substantial*substantial) * distanceFactor(distance, cfg)
}

// distanceFactor is 1 up to the floor, decays cubically up to the ceiling and
// stays constant past it.
func distanceFactor(d float64, cfg *Config) float64 {
	if d <= cfg.DistanceFloor {
		return 1
	}
	d = Min(d, cfg.DistanceCeiling)
	return math.Pow(cfg.DistanceFloor/d, 3)
}
