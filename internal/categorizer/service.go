package categorizer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

// Result summarizes a categorization pass.
type Result struct {
	ColorsScanned int
	ColorsChanged int
	Added         int
	Removed       int
}

// Service keeps group memberships of theme colors in line with the predicates.
type Service struct {
	colors  ports.ColorRepository
	groups  ports.ColorGroupRepository
	metrics ports.MetricsExporter
	logger  zerolog.Logger
}

func NewService(colors ports.ColorRepository, groups ports.ColorGroupRepository, metrics ports.MetricsExporter, logger zerolog.Logger) *Service {
	return &Service{
		colors:  colors,
		groups:  groups,
		metrics: metrics,
		logger:  logger,
	}
}

// Run re-evaluates every automatic group for every color that appears in a
// theme, adding and removing memberships to match the predicates.
// Groups without a predicate are left alone.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list color groups: %w", err)
	}

	type automatic struct {
		group     *domain.ColorGroup
		predicate Predicate
	}
	var auto []automatic
	for _, g := range groups {
		if p, ok := Lookup(g.Codename); ok {
			auto = append(auto, automatic{group: g, predicate: p})
		}
	}

	colors, err := s.colors.ListInThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme colors: %w", err)
	}

	result := &Result{}
	for _, c := range colors {
		result.ColorsScanned++

		current, err := s.groups.Memberships(ctx, c.Hex)
		if err != nil {
			return nil, fmt.Errorf("failed to get memberships of %s: %w", c.Hex, err)
		}
		member := make(map[string]bool, len(current))
		for _, g := range current {
			member[g.ID] = true
		}

		changed := false
		for _, a := range auto {
			in := a.predicate(c.HSV)
			switch {
			case in && !member[a.group.ID]:
				if err := s.groups.AddMembership(ctx, c.Hex, a.group.ID); err != nil {
					return nil, fmt.Errorf("failed to add %s to %s: %w", c.Hex, a.group.Codename, err)
				}
				s.logger.Info().Str("color", c.Hex).Str("group", a.group.Codename).Msg("added to group")
				result.Added++
				changed = true
			case !in && member[a.group.ID]:
				if err := s.groups.RemoveMembership(ctx, c.Hex, a.group.ID); err != nil {
					return nil, fmt.Errorf("failed to remove %s from %s: %w", c.Hex, a.group.Codename, err)
				}
				s.logger.Info().Str("color", c.Hex).Str("group", a.group.Codename).Msg("removed from group")
				result.Removed++
				changed = true
			}
		}

		if changed {
			result.ColorsChanged++
			if err := s.colors.Update(ctx, c); err != nil {
				return nil, fmt.Errorf("failed to save color %s: %w", c.Hex, err)
			}
		}
	}

	if err := s.metrics.ExportCategorize(ctx, &ports.CategorizeMetrics{
		ColorsScanned: int64(result.ColorsScanned),
		ColorsChanged: int64(result.ColorsChanged),
		Added:         int64(result.Added),
		Removed:       int64(result.Removed),
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to export categorize metrics")
	}

	return result, nil
}
