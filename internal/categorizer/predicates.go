// Package categorizer tags colors with semantic groups ("red", "dark",
// "muted", ...) from HSV thresholds.
package categorizer

import (
	"sort"

	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
)

// Predicate reports whether a color belongs to a group.
type Predicate func(c colorspace.HSV) bool

// predicates maps a group codename to its automatic classifier. Groups whose
// codename is absent are manual-only. Never mutated after init.
var predicates = map[string]Predicate{
	// hue families
	"red":    IsRed,
	"green":  IsGreen,
	"blue":   IsBlue,
	"yellow": IsYellow,
	"orange": IsOrange,
	"purple": IsPurple,
	"pink":   IsPink,
	"brown":  IsBrown,
	"gray":   IsGray,
	"black":  IsBlack,
	"white":  IsWhite,

	// characteristics
	"dark":   IsDark,
	"light":  IsLight,
	"bright": IsBright,
	"muted":  IsMuted,
}

// Lookup returns the predicate registered for codename.
func Lookup(codename string) (Predicate, bool) {
	p, ok := predicates[codename]
	return p, ok
}

// Codenames returns every codename with an automatic predicate, sorted.
func Codenames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Match returns the sorted codenames of every predicate c satisfies.
func Match(c colorspace.HSV) []string {
	var matched []string
	for _, name := range Codenames() {
		if predicates[name](c) {
			matched = append(matched, name)
		}
	}
	return matched
}

func IsRed(c colorspace.HSV) bool {
	if c.V <= 10 {
		return false
	}
	if !((c.H >= 0 && c.H <= 14) || (c.H >= 342 && c.H <= 359)) {
		return false
	}
	// low saturation reds read as pink
	return c.S >= 50
}

func IsGreen(c colorspace.HSV) bool {
	return c.V > 10 && c.H >= 69 && c.H <= 170
}

func IsBlue(c colorspace.HSV) bool {
	return c.V > 10 && c.H >= 167 && c.H <= 250
}

func IsYellow(c colorspace.HSV) bool {
	return c.V > 10 && c.H >= 50 && c.H <= 72
}

func IsOrange(c colorspace.HSV) bool {
	return c.H >= 25 && c.H <= 50
}

func IsPurple(c colorspace.HSV) bool {
	return c.V > 10 && c.H >= 270 && c.H <= 290
}

func IsPink(c colorspace.HSV) bool {
	return c.H > 290 && c.H <= 340
}

// IsBrown never matches; brown is assigned by hand.
func IsBrown(c colorspace.HSV) bool {
	return false
}

func IsGray(c colorspace.HSV) bool {
	return c.V > 10 && c.V < 95 && c.S <= 5
}

func IsBlack(c colorspace.HSV) bool {
	return c.V <= 10
}

func IsWhite(c colorspace.HSV) bool {
	return c.S < 5 && c.V > 95
}

func IsDark(c colorspace.HSV) bool {
	return c.V < 30
}

func IsLight(c colorspace.HSV) bool {
	return c.V > 95 && c.S < 30
}

func IsBright(c colorspace.HSV) bool {
	return c.V > 95 && c.S > 90
}

func IsMuted(c colorspace.HSV) bool {
	return c.V > 50 && c.V < 85 && c.S > 5 && c.S < 85
}
