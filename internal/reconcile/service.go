// Package reconcile applies a parsed layer to the catalog: it records every
// color the layer assigns and links those colors to the layer's theme.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/layer"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

// Variables that mark a theme's primary background colors.
var featureVariables = map[string]bool{
	"color_entry_background": true,
	"color_page_background":  true,
}

// ClassifyFeature returns the category a new theme color gets from the
// variables assigned to it.
func ClassifyFeature(variables []string) domain.ThemeColorCategory {
	for _, v := range variables {
		if featureVariables[v] {
			return domain.CategoryFeature
		}
	}
	return domain.CategoryAccent
}

// Result describes what a reconciliation did. Theme is nil when the layer's
// label matched no theme; colors are recorded regardless.
type Result struct {
	Layer         *layer.Layer
	Theme         *domain.Theme
	Colors        map[string]*domain.Color
	ColorsCreated []string
	Created       []*domain.ThemeColor
	Updated       []*domain.ThemeColor
}

type Service struct {
	colors      ports.ColorRepository
	themes      ports.ThemeRepository
	themeColors ports.ThemeColorRepository
	metrics     ports.MetricsExporter
	logger      zerolog.Logger
}

func NewService(colors ports.ColorRepository, themes ports.ThemeRepository, themeColors ports.ThemeColorRepository, metrics ports.MetricsExporter, logger zerolog.Logger) *Service {
	return &Service{
		colors:      colors,
		themes:      themes,
		themeColors: themeColors,
		metrics:     metrics,
		logger:      logger,
	}
}

// Reconcile records the layer's colors and, if the layer's label names a
// known theme, creates or updates the theme's colors. An unknown label
// returns the partial result together with an error wrapping
// domain.ErrUnresolvedTheme.
//
// Existing theme colors keep their category; only their variables change.
func (s *Service) Reconcile(ctx context.Context, l *layer.Layer) (*Result, error) {
	result := &Result{
		Layer:  l,
		Colors: make(map[string]*domain.Color, len(l.Colors)),
	}
	defer s.export(ctx, result)

	for _, hv := range l.Colors {
		c, created, err := s.lookupOrCreateColor(ctx, hv.Hex)
		if err != nil {
			return result, err
		}
		result.Colors[hv.Hex] = c
		if created {
			result.ColorsCreated = append(result.ColorsCreated, hv.Hex)
		}
	}

	label := l.LabelOrEmpty()
	var theme *domain.Theme
	if label != "" {
		var err error
		theme, err = s.themes.GetByLabel(ctx, label)
		if err != nil {
			return result, fmt.Errorf("failed to get theme %q: %w", label, err)
		}
	}
	if theme == nil {
		s.logger.Info().Str("label", label).Int("colors", len(l.Colors)).Msg("no theme for layer")
		return result, fmt.Errorf("%w: %q", domain.ErrUnresolvedTheme, label)
	}
	result.Theme = theme

	for _, hv := range l.Colors {
		variables := strings.Join(hv.Variables, ", ")

		existing, err := s.themeColors.Get(ctx, theme.ID, hv.Hex)
		if err != nil {
			return result, fmt.Errorf("failed to get theme color %s: %w", hv.Hex, err)
		}

		if existing != nil {
			if existing.Variables == variables {
				continue
			}
			if err := s.themeColors.UpdateVariables(ctx, existing.ID, variables); err != nil {
				return result, fmt.Errorf("failed to update theme color %s: %w", hv.Hex, err)
			}
			existing.Variables = variables
			result.Updated = append(result.Updated, existing)
			continue
		}

		tc := &domain.ThemeColor{
			ThemeID:   theme.ID,
			ColorHex:  hv.Hex,
			Category:  ClassifyFeature(hv.Variables),
			Variables: variables,
		}
		if err := s.themeColors.Create(ctx, tc); err != nil {
			return result, fmt.Errorf("failed to create theme color %s: %w", hv.Hex, err)
		}
		result.Created = append(result.Created, tc)
	}

	if len(result.Created) > 0 {
		if err := s.refreshInThemes(ctx, result); err != nil {
			return result, err
		}
	}

	s.logger.Info().
		Str("theme", theme.LabelID).
		Int("colors_created", len(result.ColorsCreated)).
		Int("theme_colors_created", len(result.Created)).
		Int("theme_colors_updated", len(result.Updated)).
		Msg("layer reconciled")

	return result, nil
}

// ReconcileWithRetry re-runs Reconcile when a write hits a uniqueness
// conflict, up to attempts times in total.
func (s *Service) ReconcileWithRetry(ctx context.Context, l *layer.Layer, attempts int) (*Result, error) {
	if attempts < 1 {
		attempts = 1
	}

	var (
		result *Result
		err    error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err = s.Reconcile(ctx, l)
		if !errors.Is(err, domain.ErrConstraintConflict) {
			return result, err
		}
		s.logger.Warn().Err(err).Int("attempt", attempt).Msg("reconcile conflict, retrying")

		if err := ctx.Err(); err != nil {
			return result, err
		}
	}
	return result, err
}

func (s *Service) lookupOrCreateColor(ctx context.Context, hex string) (*domain.Color, bool, error) {
	existing, err := s.colors.GetByHex(ctx, hex)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get color %s: %w", hex, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	c, err := domain.NewColor(hex)
	if err != nil {
		return nil, false, err
	}
	n, err := s.themeColors.CountByRoundedHex(ctx, c.RoundedHex)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count theme colors in bucket %s: %w", c.RoundedHex, err)
	}
	c.InThemes = n > 0
	if err := s.colors.Create(ctx, c); err != nil {
		return nil, false, fmt.Errorf("failed to create color %s: %w", hex, err)
	}
	return c, true, nil
}

// refreshInThemes marks every color sharing a bucket with a new theme color
// as appearing in a theme.
func (s *Service) refreshInThemes(ctx context.Context, result *Result) error {
	buckets := make(map[string]bool)
	for _, tc := range result.Created {
		if c, ok := result.Colors[tc.ColorHex]; ok {
			buckets[c.RoundedHex] = true
		}
	}

	rounded := make([]string, 0, len(buckets))
	for r := range buckets {
		rounded = append(rounded, r)
	}
	sort.Strings(rounded)

	for _, r := range rounded {
		n, err := s.themeColors.CountByRoundedHex(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to count theme colors in bucket %s: %w", r, err)
		}
		inThemes := n > 0

		members, err := s.colors.ListByRoundedHex(ctx, r)
		if err != nil {
			return fmt.Errorf("failed to list colors in bucket %s: %w", r, err)
		}
		for _, c := range members {
			if c.InThemes == inThemes {
				continue
			}
			c.InThemes = inThemes
			if err := s.colors.Update(ctx, c); err != nil {
				return fmt.Errorf("failed to update color %s: %w", c.Hex, err)
			}
			if _, ok := result.Colors[c.Hex]; ok {
				result.Colors[c.Hex] = c
			}
		}
	}
	return nil
}

func (s *Service) export(ctx context.Context, r *Result) {
	m := &ports.ReconcileMetrics{
		ThemeLabel:         r.Layer.LabelOrEmpty(),
		ThemeResolved:      r.Theme != nil,
		ColorsCreated:      int64(len(r.ColorsCreated)),
		ThemeColorsCreated: int64(len(r.Created)),
		ThemeColorsUpdated: int64(len(r.Updated)),
	}
	if err := s.metrics.ExportReconcile(ctx, m); err != nil {
		s.logger.Warn().Err(err).Msg("failed to export reconcile metrics")
	}
}
