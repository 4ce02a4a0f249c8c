// Package colorspace converts between hex, RGB and HSV and provides the
// perceptual helpers (bucket rounding, luminance, contrast, delta-E) that the
// catalog's classifiers are built on.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidFormat is returned when a hex string is not 3 or 6 hex digits.
var ErrInvalidFormat = errors.New("invalid color format")

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// HSV holds hue in degrees [0,360) and saturation/value as integer percentages.
type HSV struct {
	H, S, V int
}

// Hex returns the lowercase 6-digit hex encoding without a leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Normalize validates a hex color and returns its lowercase 6-digit form.
// A single leading '#' is accepted. 3-digit shorthand is expanded by
// doubling each digit.
func Normalize(hex string) (string, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 3 && len(s) != 6 {
		return "", fmt.Errorf("%w: %q must be 3 or 6 hex digits", ErrInvalidFormat, hex)
	}
	for _, ch := range s {
		if !isHexDigit(ch) {
			return "", fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidFormat, hex, ch)
		}
	}

	s = strings.ToLower(s)
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return s, nil
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// ParseRGB normalizes hex and decodes its channels.
func ParseRGB(hex string) (RGB, error) {
	s, err := Normalize(hex)
	if err != nil {
		return RGB{}, err
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, hex, err)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// ToHSV converts to HSV and rounds every component to the nearest integer.
func ToHSV(c RGB) HSV {
	h, s, v := c.colorful().Hsv()

	hue := int(math.Round(h))
	if hue >= 360 {
		hue -= 360
	}
	return HSV{
		H: hue,
		S: int(math.Round(s * 100)),
		V: int(math.Round(v * 100)),
	}
}

// HSVToRGB converts integer HSV back to 8-bit RGB.
func HSVToRGB(hsv HSV) RGB {
	c := colorful.Hsv(float64(hsv.H), float64(hsv.S)/100.0, float64(hsv.V)/100.0)
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// RelativeLuminance is the WCAG relative luminance of c.
func RelativeLuminance(c RGB) float64 {
	r := channelLuminance(float64(c.R) / 255.0)
	g := channelLuminance(float64(c.G) / 255.0)
	b := channelLuminance(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func channelLuminance(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the lighter-over-darker WCAG contrast ratio, in [1,21].
func ContrastRatio(a, b RGB) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// ContrastingTextColor returns a desaturated black or white overlay for hex:
// value flips to 1.0 when the color's value is at most 0.55, otherwise to 0.
func ContrastingTextColor(hex string) (string, error) {
	c, err := ParseRGB(hex)
	if err != nil {
		return "", err
	}

	h, _, v := c.colorful().Hsv()
	if v <= 0.55 {
		v = 1.0
	} else {
		v = 0.0
	}

	r, g, b := colorful.Hsv(h, 0, v).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}.Hex(), nil
}
