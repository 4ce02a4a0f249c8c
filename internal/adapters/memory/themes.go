package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

type LayoutRepository struct {
	s *Store
}

func (r *LayoutRepository) Create(ctx context.Context, layout *domain.Layout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.layouts {
		if l.Codename == layout.Codename {
			return conflict("layout %s already exists", layout.Codename)
		}
	}
	layout.ID = newID(layout.ID)
	layout.CreatedAt = nowIfZero(layout.CreatedAt)
	r.s.layouts[layout.ID] = *layout
	return nil
}

func (r *LayoutRepository) GetByID(ctx context.Context, id string) (*domain.Layout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.layouts[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LayoutRepository) GetByCodename(ctx context.Context, codename string) (*domain.Layout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.layouts {
		if l.Codename == codename {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *LayoutRepository) List(ctx context.Context) ([]*domain.Layout, error) {
	r.s.mu.RLock()
	layouts := make([]*domain.Layout, 0, len(r.s.layouts))
	for _, l := range r.s.layouts {
		l := l
		layouts = append(layouts, &l)
	}
	r.s.mu.RUnlock()

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].Name < layouts[j].Name })
	return layouts, nil
}

type ThemeRepository struct {
	s *Store
}

func (r *ThemeRepository) Create(ctx context.Context, theme *domain.Theme) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.layouts[theme.LayoutID]; !ok {
		return fmt.Errorf("layout %s not found", theme.LayoutID)
	}
	for _, t := range r.s.themes {
		if t.LabelID == theme.LabelID {
			return conflict("theme %s already exists", theme.LabelID)
		}
	}
	theme.ID = newID(theme.ID)
	theme.CreatedAt = nowIfZero(theme.CreatedAt)
	r.s.themes[theme.ID] = *theme
	return nil
}

func (r *ThemeRepository) GetByID(ctx context.Context, id string) (*domain.Theme, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.themes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *ThemeRepository) GetByLabel(ctx context.Context, labelID string) (*domain.Theme, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.themes {
		if t.LabelID == labelID {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *ThemeRepository) List(ctx context.Context) ([]*domain.Theme, error) {
	r.s.mu.RLock()
	themes := make([]*domain.Theme, 0, len(r.s.themes))
	for _, t := range r.s.themes {
		t := t
		themes = append(themes, &t)
	}
	r.s.mu.RUnlock()

	sort.Slice(themes, func(i, j int) bool {
		if themes[i].LayoutID != themes[j].LayoutID {
			return themes[i].LayoutID < themes[j].LayoutID
		}
		return themes[i].Name < themes[j].Name
	})
	return themes, nil
}

func (r *ThemeRepository) ListTags(ctx context.Context, themeID string) ([]*domain.StyleProperty, error) {
	r.s.mu.RLock()
	var tags []*domain.StyleProperty
	for id := range r.s.themeTags[themeID] {
		if p, ok := r.s.properties[id]; ok {
			tags = append(tags, &p)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(tags, func(i, j int) bool { return tags[i].Codename < tags[j].Codename })
	return tags, nil
}

func (r *ThemeRepository) AddTag(ctx context.Context, themeID, propertyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.themes[themeID]; !ok {
		return fmt.Errorf("theme %s not found", themeID)
	}
	if _, ok := r.s.properties[propertyID]; !ok {
		return fmt.Errorf("style property %s not found", propertyID)
	}
	if r.s.themeTags[themeID] == nil {
		r.s.themeTags[themeID] = make(map[string]bool)
	}
	r.s.themeTags[themeID][propertyID] = true
	return nil
}

func (r *ThemeRepository) RemoveTag(ctx context.Context, themeID, propertyID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.themeTags[themeID], propertyID)
	return nil
}

type ThemeColorRepository struct {
	s *Store
}

func (r *ThemeColorRepository) Get(ctx context.Context, themeID, colorHex string) (*domain.ThemeColor, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.ThemeColor
	for _, tc := range r.s.themeColors {
		if tc.ThemeID != themeID || tc.ColorHex != colorHex {
			continue
		}
		tc := tc
		if found == nil || tc.Category == domain.CategoryFeature {
			found = &tc
		}
	}
	return found, nil
}

func (r *ThemeColorRepository) Create(ctx context.Context, tc *domain.ThemeColor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !tc.Category.Valid() {
		return fmt.Errorf("invalid theme color category %q", tc.Category)
	}
	if _, ok := r.s.themes[tc.ThemeID]; !ok {
		return fmt.Errorf("theme %s not found", tc.ThemeID)
	}
	if _, ok := r.s.colors[tc.ColorHex]; !ok {
		return fmt.Errorf("color %s not found", tc.ColorHex)
	}
	for _, existing := range r.s.themeColors {
		if existing.ThemeID == tc.ThemeID && existing.ColorHex == tc.ColorHex && existing.Category == tc.Category {
			return conflict("theme color %s/%s/%s already exists", tc.ThemeID, tc.ColorHex, tc.Category)
		}
	}
	tc.ID = newID(tc.ID)
	r.s.themeColors[tc.ID] = *tc
	return nil
}

func (r *ThemeColorRepository) UpdateVariables(ctx context.Context, id, variables string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tc, ok := r.s.themeColors[id]
	if !ok {
		return fmt.Errorf("theme color %s not found", id)
	}
	tc.Variables = variables
	r.s.themeColors[id] = tc
	return nil
}

func (r *ThemeColorRepository) ListByTheme(ctx context.Context, themeID string) ([]*domain.ThemeColor, error) {
	r.s.mu.RLock()
	var tcs []*domain.ThemeColor
	for _, tc := range r.s.themeColors {
		if tc.ThemeID == themeID {
			tc := tc
			tcs = append(tcs, &tc)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(tcs, func(i, j int) bool {
		if tcs[i].Category != tcs[j].Category {
			return tcs[i].Category > tcs[j].Category
		}
		return tcs[i].ColorHex < tcs[j].ColorHex
	})
	return tcs, nil
}

func (r *ThemeColorRepository) CountByRoundedHex(ctx context.Context, roundedHex string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, tc := range r.s.themeColors {
		if c, ok := r.s.colors[tc.ColorHex]; ok && c.RoundedHex == roundedHex {
			n++
		}
	}
	return n, nil
}

type StylePropertyRepository struct {
	s *Store
}

func (r *StylePropertyRepository) Create(ctx context.Context, property *domain.StyleProperty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.properties {
		if p.Codename == property.Codename {
			return conflict("style property %s already exists", property.Codename)
		}
	}
	property.ID = newID(property.ID)
	r.s.properties[property.ID] = *property
	return nil
}

func (r *StylePropertyRepository) GetByCodename(ctx context.Context, codename string) (*domain.StyleProperty, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.properties {
		if p.Codename == codename {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *StylePropertyRepository) List(ctx context.Context) ([]*domain.StyleProperty, error) {
	r.s.mu.RLock()
	props := make([]*domain.StyleProperty, 0, len(r.s.properties))
	for _, p := range r.s.properties {
		p := p
		props = append(props, &p)
	}
	r.s.mu.RUnlock()

	sort.Slice(props, func(i, j int) bool { return props[i].Label < props[j].Label })
	return props, nil
}
