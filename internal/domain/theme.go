package domain

import "time"

type Layout struct {
	ID        string
	Name      string
	Codename  string
	LabelID   *string
	Official  bool
	CreatedAt time.Time
}

type Theme struct {
	ID        string
	LayoutID  string
	Name      string
	LabelID   string // redist_uniq of the theme's layer, e.g. "bases/beechy"
	Official  bool
	CreatedAt time.Time
}

// ThemeColorCategory is the role a color plays in a theme.
type ThemeColorCategory string

const (
	CategoryFeature ThemeColorCategory = "feature"
	CategoryAccent  ThemeColorCategory = "accent"
)

func (c ThemeColorCategory) Valid() bool {
	return c == CategoryFeature || c == CategoryAccent
}

// ThemeColor associates a color with a theme. At most one exists per
// (theme, color, category).
type ThemeColor struct {
	ID        string
	ThemeID   string
	ColorHex  string
	Category  ThemeColorCategory
	Variables string // comma-separated stylesheet variable names
}

// StyleProperty is a tag on a theme or layout, e.g. "dark-on-light".
type StyleProperty struct {
	ID        string
	Codename  string
	Label     string
	ThemeUse  bool
	LayoutUse bool
}

// Well-known theme tags maintained by the contrast classifier.
const (
	PropertyDarkOnLight  = "dark-on-light"
	PropertyLightOnDark  = "light-on-dark"
	PropertyHighContrast = "high-contrast"
	PropertyLowContrast  = "low-contrast"
)
