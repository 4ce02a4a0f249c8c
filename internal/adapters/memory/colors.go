package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
)

type ColorRepository struct {
	s *Store
}

func (r *ColorRepository) GetByHex(ctx context.Context, hex string) (*domain.Color, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.colors[hex]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ColorRepository) Create(ctx context.Context, color *domain.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.colors[color.Hex]; ok {
		return conflict("color %s already exists", color.Hex)
	}
	r.s.colors[color.Hex] = *color
	return nil
}

func (r *ColorRepository) Update(ctx context.Context, color *domain.Color) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.colors[color.Hex]; !ok {
		return fmt.Errorf("color %s not found", color.Hex)
	}
	r.s.colors[color.Hex] = *color
	return nil
}

func (r *ColorRepository) ListInThemes(ctx context.Context) ([]*domain.Color, error) {
	colors := r.filter(func(c domain.Color) bool { return c.InThemes })
	sortColorsByHSV(colors)
	return colors, nil
}

func (r *ColorRepository) ListRound(ctx context.Context) ([]*domain.Color, error) {
	colors := r.filter(func(c domain.Color) bool { return c.IsRound })
	sortColorsByHex(colors)
	return colors, nil
}

func (r *ColorRepository) ListByRoundedHex(ctx context.Context, roundedHex string) ([]*domain.Color, error) {
	colors := r.filter(func(c domain.Color) bool { return c.RoundedHex == roundedHex })
	sortColorsByHex(colors)
	return colors, nil
}

func (r *ColorRepository) filter(keep func(domain.Color) bool) []*domain.Color {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Color
	for _, c := range r.s.colors {
		if keep(c) {
			c := c
			out = append(out, &c)
		}
	}
	return out
}

type ColorDistanceRepository struct {
	s *Store
}

func (r *ColorDistanceRepository) Get(ctx context.Context, hexA, hexB string) (*domain.ColorDistance, error) {
	a, b := domain.CanonicalPair(hexA, hexB)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	d, ok := r.s.distances[pairKey{a, b}]
	if !ok {
		return nil, nil
	}
	return &domain.ColorDistance{HexA: a, HexB: b, Distance: d}, nil
}

func (r *ColorDistanceRepository) SaveIfAbsent(ctx context.Context, pairs []*domain.ColorDistance) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	written := 0
	for _, p := range pairs {
		a, b := domain.CanonicalPair(p.HexA, p.HexB)
		if a == b {
			return written, fmt.Errorf("distance pair needs two distinct colors, got %s twice", a)
		}
		key := pairKey{a, b}
		if _, ok := r.s.distances[key]; ok {
			continue
		}
		r.s.distances[key] = p.Distance
		if r.s.partners[a] == nil {
			r.s.partners[a] = make(map[string]bool)
		}
		r.s.partners[a][b] = true
		written++
	}
	return written, nil
}

func (r *ColorDistanceRepository) ListPartners(ctx context.Context, hex string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var partners []string
	for b := range r.s.partners[hex] {
		partners = append(partners, b)
	}
	sort.Strings(partners)
	return partners, nil
}

func (r *ColorDistanceRepository) ListNear(ctx context.Context, hex string, maxDistance float64) ([]*domain.ColorDistance, error) {
	r.s.mu.RLock()
	var near []*domain.ColorDistance
	for key, d := range r.s.distances {
		if (key[0] == hex || key[1] == hex) && d < maxDistance {
			near = append(near, &domain.ColorDistance{HexA: key[0], HexB: key[1], Distance: d})
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(near, func(i, j int) bool {
		if near[i].Distance != near[j].Distance {
			return near[i].Distance < near[j].Distance
		}
		return near[i].Other(hex) < near[j].Other(hex)
	})
	return near, nil
}

type ColorGroupRepository struct {
	s *Store
}

func (r *ColorGroupRepository) Create(ctx context.Context, group *domain.ColorGroup) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.groups {
		if g.Codename == group.Codename {
			return conflict("color group %s already exists", group.Codename)
		}
	}
	group.ID = newID(group.ID)
	r.s.groups[group.ID] = *group
	return nil
}

func (r *ColorGroupRepository) GetByCodename(ctx context.Context, codename string) (*domain.ColorGroup, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.groups {
		if g.Codename == codename {
			return &g, nil
		}
	}
	return nil, nil
}

func (r *ColorGroupRepository) List(ctx context.Context) ([]*domain.ColorGroup, error) {
	r.s.mu.RLock()
	groups := make([]*domain.ColorGroup, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		g := g
		groups = append(groups, &g)
	}
	r.s.mu.RUnlock()

	sortGroups(groups)
	return groups, nil
}

func (r *ColorGroupRepository) Memberships(ctx context.Context, colorHex string) ([]*domain.ColorGroup, error) {
	r.s.mu.RLock()
	var groups []*domain.ColorGroup
	for id := range r.s.members[colorHex] {
		if g, ok := r.s.groups[id]; ok {
			groups = append(groups, &g)
		}
	}
	r.s.mu.RUnlock()

	sortGroups(groups)
	return groups, nil
}

func (r *ColorGroupRepository) AddMembership(ctx context.Context, colorHex, groupID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.colors[colorHex]; !ok {
		return fmt.Errorf("color %s not found", colorHex)
	}
	if _, ok := r.s.groups[groupID]; !ok {
		return fmt.Errorf("color group %s not found", groupID)
	}
	if r.s.members[colorHex] == nil {
		r.s.members[colorHex] = make(map[string]bool)
	}
	r.s.members[colorHex][groupID] = true
	return nil
}

func (r *ColorGroupRepository) RemoveMembership(ctx context.Context, colorHex, groupID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.members[colorHex], groupID)
	return nil
}

func (r *ColorGroupRepository) ListColors(ctx context.Context, groupID string) ([]*domain.Color, error) {
	r.s.mu.RLock()
	var colors []*domain.Color
	for hex, groups := range r.s.members {
		if !groups[groupID] {
			continue
		}
		if c, ok := r.s.colors[hex]; ok {
			colors = append(colors, &c)
		}
	}
	r.s.mu.RUnlock()

	sortColorsByHex(colors)
	return colors, nil
}

func sortGroups(groups []*domain.ColorGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Category != groups[j].Category {
			return groups[i].Category < groups[j].Category
		}
		return groups[i].Label < groups[j].Label
	})
}
