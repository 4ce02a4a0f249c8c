// Package distance seeds the bucket color grid and maintains the cache of
// perceptual distances between bucket colors.
package distance

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

// DefaultMaxDistance is the delta-E below which two colors count as nearby.
const DefaultMaxDistance = 10.0

// Neighbor is a color near the queried one.
type Neighbor struct {
	Color    *domain.Color
	Distance float64
}

// BuildResult counts the pairs handled by Build.
type BuildResult struct {
	Computed int
	Skipped  int
	Duration time.Duration
}

type Option func(*Index)

// WithWorkers bounds the number of anchors computed concurrently.
func WithWorkers(n int) Option {
	return func(i *Index) {
		if n > 0 {
			i.workers = n
		}
	}
}

// Index answers distance and neighbor queries over the cached pairs.
type Index struct {
	colors      ports.ColorRepository
	themeColors ports.ThemeColorRepository
	distances   ports.ColorDistanceRepository
	metrics     ports.MetricsExporter
	logger      zerolog.Logger
	workers     int

	// SQLite allows one writer; computation runs in parallel, inserts do not.
	writeMu sync.Mutex
}

func NewIndex(colors ports.ColorRepository, themeColors ports.ThemeColorRepository, distances ports.ColorDistanceRepository, metrics ports.MetricsExporter, logger zerolog.Logger, opts ...Option) *Index {
	idx := &Index{
		colors:      colors,
		themeColors: themeColors,
		distances:   distances,
		metrics:     metrics,
		logger:      logger,
		workers:     runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// SeedGrid creates every bucket color that does not exist yet and returns
// how many were created.
func (i *Index) SeedGrid(ctx context.Context) (int, error) {
	created := 0
	for _, hex := range colorspace.BucketGrid() {
		existing, err := i.colors.GetByHex(ctx, hex)
		if err != nil {
			return created, fmt.Errorf("failed to look up bucket color %s: %w", hex, err)
		}
		if existing != nil {
			continue
		}

		c, err := domain.NewColor(hex)
		if err != nil {
			return created, err
		}
		n, err := i.themeColors.CountByRoundedHex(ctx, c.RoundedHex)
		if err != nil {
			return created, fmt.Errorf("failed to count theme colors in bucket %s: %w", c.RoundedHex, err)
		}
		c.InThemes = n > 0
		if err := i.colors.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrConstraintConflict) {
				continue
			}
			return created, fmt.Errorf("failed to create bucket color %s: %w", hex, err)
		}
		created++
	}

	i.logger.Info().Int("created", created).Msg("bucket grid seeded")
	return created, nil
}

// Build computes the distance of every unordered pair of round colors that
// is not cached yet. Existing pairs are never recomputed.
func (i *Index) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	round, err := i.colors.ListRound(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list round colors: %w", err)
	}

	var computed, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	// round is sorted by hex, so every partner after the anchor is larger.
	for a := range round {
		anchor := round[a]
		partners := round[a+1:]

		g.Go(func() error {
			existing, err := i.distances.ListPartners(gctx, anchor.Hex)
			if err != nil {
				return fmt.Errorf("failed to list partners of %s: %w", anchor.Hex, err)
			}
			have := make(map[string]bool, len(existing))
			for _, hex := range existing {
				have[hex] = true
			}

			var pairs []*domain.ColorDistance
			for _, p := range partners {
				if have[p.Hex] {
					skipped.Add(1)
					continue
				}
				pairs = append(pairs, domain.NewColorDistance(anchor.Hex, p.Hex, colorspace.DeltaECMC(anchor.RGB, p.RGB)))
			}
			if len(pairs) == 0 {
				return nil
			}

			i.writeMu.Lock()
			written, err := i.distances.SaveIfAbsent(gctx, pairs)
			i.writeMu.Unlock()
			if err != nil {
				return fmt.Errorf("failed to save distances for %s: %w", anchor.Hex, err)
			}
			computed.Add(int64(written))
			skipped.Add(int64(len(pairs) - written))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &BuildResult{
		Computed: int(computed.Load()),
		Skipped:  int(skipped.Load()),
		Duration: time.Since(start),
	}

	i.logger.Info().
		Int("colors", len(round)).
		Int("computed", result.Computed).
		Int("skipped", result.Skipped).
		Dur("duration", result.Duration).
		Msg("distance cache built")

	if err := i.metrics.ExportDistances(ctx, &ports.DistanceMetrics{
		PairsComputed: int64(result.Computed),
		PairsSkipped:  int64(result.Skipped),
		Duration:      result.Duration,
	}); err != nil {
		i.logger.Warn().Err(err).Msg("failed to export distance metrics")
	}

	return result, nil
}

// Distance returns the cached distance between two colors in either order.
// ok is false when the pair is not cached.
func (i *Index) Distance(ctx context.Context, a, b string) (float64, bool, error) {
	a, err := colorspace.Normalize(a)
	if err != nil {
		return 0, false, err
	}
	b, err = colorspace.Normalize(b)
	if err != nil {
		return 0, false, err
	}
	if a == b {
		return 0, true, nil
	}

	d, err := i.distances.Get(ctx, a, b)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get distance %s/%s: %w", a, b, err)
	}
	if d == nil {
		return 0, false, nil
	}
	return d.Distance, true, nil
}

// Nearby returns theme colors whose bucket lies within maxDistance of
// hex's bucket, closest first. A color whose bucket color has not been
// seeded has no neighbors, and neither has any color when maxDistance is
// not positive.
func (i *Index) Nearby(ctx context.Context, hex string, maxDistance float64) ([]Neighbor, error) {
	if maxDistance <= 0 {
		return nil, nil
	}

	bucket, err := i.representative(ctx, hex)
	if errors.Is(err, domain.ErrNoBucketRepresentative) {
		i.logger.Debug().Str("color", hex).Msg("no bucket representative")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	near, err := i.distances.ListNear(ctx, bucket.Hex, maxDistance)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors near %s: %w", bucket.Hex, err)
	}

	var neighbors []Neighbor
	for _, d := range near {
		other, err := i.colors.GetByHex(ctx, d.Other(bucket.Hex))
		if err != nil {
			return nil, fmt.Errorf("failed to get color %s: %w", d.Other(bucket.Hex), err)
		}
		if other == nil || !other.InThemes {
			continue
		}
		neighbors = append(neighbors, Neighbor{Color: other, Distance: d.Distance})
	}
	return neighbors, nil
}

// Similar returns the theme colors that share hex's bucket, excluding hex.
func (i *Index) Similar(ctx context.Context, hex string) ([]*domain.Color, error) {
	c, err := domain.NewColor(hex)
	if err != nil {
		return nil, err
	}

	same, err := i.colors.ListByRoundedHex(ctx, c.RoundedHex)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors in bucket %s: %w", c.RoundedHex, err)
	}

	var similar []*domain.Color
	for _, s := range same {
		if s.Hex != c.Hex && s.InThemes {
			similar = append(similar, s)
		}
	}
	return similar, nil
}

func (i *Index) representative(ctx context.Context, hex string) (*domain.Color, error) {
	c, err := domain.NewColor(hex)
	if err != nil {
		return nil, err
	}

	bucket, err := i.colors.GetByHex(ctx, c.RoundedHex)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket color %s: %w", c.RoundedHex, err)
	}
	if bucket == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoBucketRepresentative, c.RoundedHex)
	}
	return bucket, nil
}
