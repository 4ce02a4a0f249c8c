// Package memory provides map-backed implementations of the repository
// ports. It enforces the same uniqueness rules as the SQL schema and is used
// for dry-run imports and tests.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/ports"
)

type pairKey [2]string

// Store holds all catalog state behind a single lock.
type Store struct {
	mu          sync.RWMutex
	colors      map[string]domain.Color
	layouts     map[string]domain.Layout
	themes      map[string]domain.Theme
	themeTags   map[string]map[string]bool
	themeColors map[string]domain.ThemeColor
	distances   map[pairKey]float64
	partners    map[string]map[string]bool
	groups      map[string]domain.ColorGroup
	members     map[string]map[string]bool
	properties  map[string]domain.StyleProperty
}

func NewStore() *Store {
	return &Store{
		colors:      make(map[string]domain.Color),
		layouts:     make(map[string]domain.Layout),
		themes:      make(map[string]domain.Theme),
		themeTags:   make(map[string]map[string]bool),
		themeColors: make(map[string]domain.ThemeColor),
		distances:   make(map[pairKey]float64),
		partners:    make(map[string]map[string]bool),
		groups:      make(map[string]domain.ColorGroup),
		members:     make(map[string]map[string]bool),
		properties:  make(map[string]domain.StyleProperty),
	}
}

// Repositories holds the memory repositories as port interfaces.
type Repositories struct {
	Colors      ports.ColorRepository
	Layouts     ports.LayoutRepository
	Themes      ports.ThemeRepository
	ThemeColors ports.ThemeColorRepository
	Distances   ports.ColorDistanceRepository
	Groups      ports.ColorGroupRepository
	Properties  ports.StylePropertyRepository
}

// NewRepositories creates every memory repository over one shared store.
func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		Colors:      &ColorRepository{s: s},
		Layouts:     &LayoutRepository{s: s},
		Themes:      &ThemeRepository{s: s},
		ThemeColors: &ThemeColorRepository{s: s},
		Distances:   &ColorDistanceRepository{s: s},
		Groups:      &ColorGroupRepository{s: s},
		Properties:  &StylePropertyRepository{s: s},
	}
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrConstraintConflict, fmt.Sprintf(format, args...))
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func nowIfZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func sortColorsByHSV(colors []*domain.Color) {
	sort.Slice(colors, func(i, j int) bool {
		a, b := colors[i].HSV, colors[j].HSV
		if a.H != b.H {
			return a.H < b.H
		}
		if a.S != b.S {
			return a.S < b.S
		}
		if a.V != b.V {
			return a.V < b.V
		}
		return colors[i].Hex < colors[j].Hex
	})
}

func sortColorsByHex(colors []*domain.Color) {
	sort.Slice(colors, func(i, j int) bool { return colors[i].Hex < colors[j].Hex })
}
