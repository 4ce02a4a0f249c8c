// Package contrast tags themes as dark-on-light or light-on-dark and as
// high or low contrast from their entry and page colors.
package contrast

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

const (
	HighContrastRatio = 7.0
	LowContrastRatio  = 5.0
)

const (
	varEntryBackground = "color_entry_background"
	varEntryText       = "color_entry_text"
	varPageBackground  = "color_page_background"
	varPageText        = "color_page_text"
)

var entryVariables = []string{varEntryBackground, varPageText, varEntryText, varPageBackground}

// A variable matches only when no identifier character follows it.
var entryPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(entryVariables))
	for _, name := range entryVariables {
		m[name] = regexp.MustCompile(regexp.QuoteMeta(name) + `([^_a-zA-Z0-9]|$)`)
	}
	return m
}()

var propertyLabels = map[string]string{
	domain.PropertyDarkOnLight:  "Dark on light",
	domain.PropertyLightOnDark:  "Light on dark",
	domain.PropertyHighContrast: "High contrast",
	domain.PropertyLowContrast:  "Low contrast",
}

// Outcome reports how a theme was classified. Skipped themes lack a
// foreground or background color and keep their tags.
type Outcome struct {
	ThemeID    string
	Skipped    bool
	Foreground *domain.Color
	Background *domain.Color
	Ratio      float64
	Added      []string
	Removed    []string
}

// EntryColors resolves a theme's text and background colors. Entry colors
// win over page colors. When several theme colors carry the same variable
// the last one wins. colors maps hex to color.
func EntryColors(themeColors []*domain.ThemeColor, colors map[string]*domain.Color) (fg, bg *domain.Color) {
	found := make(map[string]*domain.Color, len(entryVariables))
	for _, tc := range themeColors {
		for _, name := range entryVariables {
			if entryPatterns[name].MatchString(tc.Variables) {
				if c, ok := colors[tc.ColorHex]; ok {
					found[name] = c
				}
			}
		}
	}

	fg = found[varEntryText]
	if fg == nil {
		fg = found[varPageText]
	}
	bg = found[varEntryBackground]
	if bg == nil {
		bg = found[varPageBackground]
	}
	return fg, bg
}

// Tags returns the tags to set and to unset for a foreground/background pair.
func Tags(fg, bg *domain.Color) (set, unset []string, ratio float64) {
	if fg.HSV.V < bg.HSV.V {
		set = append(set, domain.PropertyDarkOnLight)
		unset = append(unset, domain.PropertyLightOnDark)
	} else {
		set = append(set, domain.PropertyLightOnDark)
		unset = append(unset, domain.PropertyDarkOnLight)
	}

	ratio = colorspace.ContrastRatio(fg.RGB, bg.RGB)
	switch {
	case ratio >= HighContrastRatio:
		set = append(set, domain.PropertyHighContrast)
		unset = append(unset, domain.PropertyLowContrast)
	case ratio <= LowContrastRatio:
		set = append(set, domain.PropertyLowContrast)
		unset = append(unset, domain.PropertyHighContrast)
	default:
		unset = append(unset, domain.PropertyHighContrast, domain.PropertyLowContrast)
	}
	return set, unset, ratio
}

type Classifier struct {
	themes      ports.ThemeRepository
	themeColors ports.ThemeColorRepository
	colors      ports.ColorRepository
	properties  ports.StylePropertyRepository
	logger      zerolog.Logger
}

func NewClassifier(themes ports.ThemeRepository, themeColors ports.ThemeColorRepository, colors ports.ColorRepository, properties ports.StylePropertyRepository, logger zerolog.Logger) *Classifier {
	return &Classifier{
		themes:      themes,
		themeColors: themeColors,
		colors:      colors,
		properties:  properties,
		logger:      logger,
	}
}

// Classify updates the contrast tags of one theme.
func (c *Classifier) Classify(ctx context.Context, themeID string) (*Outcome, error) {
	out := &Outcome{ThemeID: themeID}

	tcs, err := c.themeColors.ListByTheme(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme colors: %w", err)
	}
	colors := make(map[string]*domain.Color, len(tcs))
	for _, tc := range tcs {
		if _, ok := colors[tc.ColorHex]; ok {
			continue
		}
		col, err := c.colors.GetByHex(ctx, tc.ColorHex)
		if err != nil {
			return nil, fmt.Errorf("failed to get color %s: %w", tc.ColorHex, err)
		}
		if col != nil {
			colors[tc.ColorHex] = col
		}
	}

	out.Foreground, out.Background = EntryColors(tcs, colors)
	if out.Foreground == nil || out.Background == nil {
		out.Skipped = true
		c.logger.Debug().Str("theme", themeID).Msg("no entry colors, skipping")
		return out, nil
	}

	set, unset, ratio := Tags(out.Foreground, out.Background)
	out.Ratio = ratio

	current, err := c.themes.ListTags(ctx, themeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list theme tags: %w", err)
	}
	has := make(map[string]bool, len(current))
	for _, p := range current {
		has[p.Codename] = true
	}

	for _, codename := range set {
		if has[codename] {
			continue
		}
		p, err := c.property(ctx, codename)
		if err != nil {
			return nil, err
		}
		if err := c.themes.AddTag(ctx, themeID, p.ID); err != nil {
			return nil, fmt.Errorf("failed to tag theme with %s: %w", codename, err)
		}
		out.Added = append(out.Added, codename)
	}
	for _, codename := range unset {
		if !has[codename] {
			continue
		}
		p, err := c.property(ctx, codename)
		if err != nil {
			return nil, err
		}
		if err := c.themes.RemoveTag(ctx, themeID, p.ID); err != nil {
			return nil, fmt.Errorf("failed to untag theme %s: %w", codename, err)
		}
		out.Removed = append(out.Removed, codename)
	}

	c.logger.Info().
		Str("theme", themeID).
		Str("fg", out.Foreground.Hex).
		Str("bg", out.Background.Hex).
		Float64("ratio", ratio).
		Strs("added", out.Added).
		Strs("removed", out.Removed).
		Msg("theme classified")

	return out, nil
}

// ClassifyAll classifies every theme and returns one outcome per theme.
func (c *Classifier) ClassifyAll(ctx context.Context) ([]*Outcome, error) {
	themes, err := c.themes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}

	outcomes := make([]*Outcome, 0, len(themes))
	for _, t := range themes {
		out, err := c.Classify(ctx, t.ID)
		if err != nil {
			return outcomes, fmt.Errorf("theme %s: %w", t.LabelID, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func (c *Classifier) property(ctx context.Context, codename string) (*domain.StyleProperty, error) {
	p, err := c.properties.GetByCodename(ctx, codename)
	if err != nil {
		return nil, fmt.Errorf("failed to get style property %s: %w", codename, err)
	}
	if p != nil {
		return p, nil
	}

	p = &domain.StyleProperty{Codename: codename, Label: propertyLabels[codename], ThemeUse: true}
	if err := c.properties.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrConstraintConflict) {
			return c.properties.GetByCodename(ctx, codename)
		}
		return nil, fmt.Errorf("failed to create style property %s: %w", codename, err)
	}
	return p, nil
}
