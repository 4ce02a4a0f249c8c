package domain

import "github.com/emiliopalmerini/dwstyles/internal/colorspace"

// Color is a catalogued color. Every field except Label and InThemes is
// derived from Hex and must only change through NewColor or SetHex.
type Color struct {
	Hex        string // normalized, 6 lowercase hex digits
	Label      string
	RGB        colorspace.RGB
	HSV        colorspace.HSV
	RoundedHex string
	IsRound    bool
	InThemes   bool // some theme uses a color in this color's bucket
}

// NewColor normalizes hex and computes all derived fields.
func NewColor(hex string) (*Color, error) {
	c := &Color{}
	if err := c.SetHex(hex); err != nil {
		return nil, err
	}
	return c, nil
}

// SetHex replaces the color's hex and recomputes every derived field.
func (c *Color) SetHex(hex string) error {
	normalized, err := colorspace.Normalize(hex)
	if err != nil {
		return err
	}
	rgb, err := colorspace.ParseRGB(normalized)
	if err != nil {
		return err
	}

	rounded := colorspace.RoundRGB(rgb)

	c.Hex = normalized
	c.RGB = rgb
	c.HSV = colorspace.ToHSV(rgb)
	c.RoundedHex = rounded.Hex()
	c.IsRound = rounded == rgb
	return nil
}

// RoundedRGB returns the bucket representative's channels.
func (c *Color) RoundedRGB() colorspace.RGB {
	return colorspace.RoundRGB(c.RGB)
}

// CSSHex returns the hex with a leading '#'.
func (c *Color) CSSHex() string {
	return "#" + c.Hex
}

// ContrastText returns the black or white overlay color for text drawn on c.
func (c *Color) ContrastText() string {
	// Hex is already normalized, so this cannot fail.
	hex, _ := colorspace.ContrastingTextColor(c.Hex)
	return hex
}

// ColorGroupCategory separates hue families from characteristics.
type ColorGroupCategory string

const (
	ColorGroupColor          ColorGroupCategory = "color"
	ColorGroupCharacteristic ColorGroupCategory = "characteristic"
)

// ColorGroup is a named semantic tag such as "red" or "muted".
type ColorGroup struct {
	ID           string
	Codename     string
	Label        string
	Description  *string
	Category     ColorGroupCategory
	DisplayColor string
}

// ColorDistance is the cached perceptual distance between two bucket colors.
// HexA is always lexicographically smaller than HexB.
type ColorDistance struct {
	HexA     string
	HexB     string
	Distance float64
}

// CanonicalPair orders two hexes so that the smaller one comes first.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// NewColorDistance builds a pair in canonical order.
func NewColorDistance(a, b string, distance float64) *ColorDistance {
	a, b = CanonicalPair(a, b)
	return &ColorDistance{HexA: a, HexB: b, Distance: distance}
}

// Other returns the member of the pair that is not hex.
func (d *ColorDistance) Other(hex string) string {
	if d.HexA == hex {
		return d.HexB
	}
	return d.HexA
}
