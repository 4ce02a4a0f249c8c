package reconcile

import (
	"context"
	"fmt"
	"sort"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

// PaletteEntry is one theme color joined with its catalog color.
type PaletteEntry struct {
	ThemeColor *domain.ThemeColor
	Color      *domain.Color
}

// Palette lists a theme's colors split by category.
type Palette struct {
	Theme    *domain.Theme
	Features []PaletteEntry
	Accents  []PaletteEntry
}

// Palette returns the colors of a theme, each category ordered by hue,
// saturation and value. It returns nil when the theme does not exist.
func (s *Service) Palette(ctx context.Context, themeID string) (*Palette, error) {
	theme, err := s.themes.GetByID(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get theme %s: %w", themeID, err)
	}
	if theme == nil {
		return nil, nil
	}

	tcs, err := s.themeColors.ListByTheme(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors of theme %s: %w", themeID, err)
	}

	p := &Palette{Theme: theme}
	for _, tc := range tcs {
		c, err := s.colors.GetByHex(ctx, tc.ColorHex)
		if err != nil {
			return nil, fmt.Errorf("failed to get color %s: %w", tc.ColorHex, err)
		}
		if c == nil {
			continue
		}
		entry := PaletteEntry{ThemeColor: tc, Color: c}
		if tc.Category == domain.CategoryFeature {
			p.Features = append(p.Features, entry)
		} else {
			p.Accents = append(p.Accents, entry)
		}
	}
	sortByHSV(p.Features)
	sortByHSV(p.Accents)
	return p, nil
}

func sortByHSV(entries []PaletteEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Color.HSV, entries[j].Color.HSV
		if a.H != b.H {
			return a.H < b.H
		}
		if a.S != b.S {
			return a.S < b.S
		}
		return a.V < b.V
	})
}
