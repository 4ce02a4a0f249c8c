package colorspace

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"F0A", "ff00aa"},
		{"fff", "ffffff"},
		{"#123", "112233"},
		{"ABCDEF", "abcdef"},
		{"#00aAbB", "00aabb"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Rejects(t *testing.T) {
	for _, in := range []string{"", "#", "ab", "abcd", "abcde", "abcdefa", "ggg", "12345z", "##123"} {
		t.Run(in, func(t *testing.T) {
			_, err := Normalize(in)
			require.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 0x1a, G: 0x2b, B: 0x3c}, c)
	assert.Equal(t, "1a2b3c", c.Hex())

	_, err = ParseRGB("xyz")
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestToHSV(t *testing.T) {
	tests := []struct {
		hex  string
		want HSV
	}{
		{"000000", HSV{0, 0, 0}},
		{"ffffff", HSV{0, 0, 100}},
		{"ff0000", HSV{0, 100, 100}},
		{"00ff00", HSV{120, 100, 100}},
		{"0000ff", HSV{240, 100, 100}},
		{"808080", HSV{0, 0, 50}},
		{"ff00ff", HSV{300, 100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ParseRGB(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ToHSV(c))
		})
	}
}

func TestToHSV_HueInRange(t *testing.T) {
	// Hues just below 360 must not round up to 360.
	c := RGB{R: 255, G: 0, B: 1}
	hsv := ToHSV(c)
	assert.GreaterOrEqual(t, hsv.H, 0)
	assert.Less(t, hsv.H, 360)
}

func TestRoundToBucket(t *testing.T) {
	tests := []struct {
		in, want uint8
	}{
		{0, 0},
		{15, 0},
		{16, 32},
		{31, 32},
		{47, 32},
		{48, 64},
		{224, 224},
		{239, 224},
		{240, 255},
		{255, 255},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundToBucket(tt.in), "RoundToBucket(%d)", tt.in)
	}
}

func TestRoundToBucket_Idempotent(t *testing.T) {
	for v := 0; v < 256; v++ {
		once := RoundToBucket(uint8(v))
		assert.Equal(t, once, RoundToBucket(once), "value %d", v)
	}
}

func TestBucketGrid(t *testing.T) {
	assert.Equal(t, []uint8{0, 32, 64, 96, 128, 160, 192, 224, 255}, BucketValues())

	grid := BucketGrid()
	require.Len(t, grid, 729)
	assert.Equal(t, "000000", grid[0])
	assert.Equal(t, "ffffff", grid[len(grid)-1])
	assert.True(t, sort.StringsAreSorted(grid))

	for _, hex := range grid {
		c, err := ParseRGB(hex)
		require.NoError(t, err)
		assert.Equal(t, c, RoundRGB(c), "grid color %s is not a fixed point", hex)
	}
}

func TestHSVRoundTrip_BucketGrid(t *testing.T) {
	const tolerance = 6

	for _, hex := range BucketGrid() {
		c, err := ParseRGB(hex)
		require.NoError(t, err)

		back := HSVToRGB(ToHSV(c))
		assert.LessOrEqual(t, absDiff(c.R, back.R), tolerance, "%s red", hex)
		assert.LessOrEqual(t, absDiff(c.G, back.G), tolerance, "%s green", hex)
		assert.LessOrEqual(t, absDiff(c.B, back.B), tolerance, "%s blue", hex)
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestContrastRatio(t *testing.T) {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	teal := RGB{R: 0x11, G: 0x88, B: 0x99}

	assert.InDelta(t, 21.0, ContrastRatio(black, white), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatio(teal, teal), 1e-12)
	assert.InDelta(t, ContrastRatio(teal, white), ContrastRatio(white, teal), 1e-12)
	assert.InDelta(t, ContrastRatio(black, teal), ContrastRatio(teal, black), 1e-12)
}

func TestRelativeLuminance(t *testing.T) {
	assert.InDelta(t, 0.0, RelativeLuminance(RGB{}), 1e-12)
	assert.InDelta(t, 1.0, RelativeLuminance(RGB{R: 255, G: 255, B: 255}), 1e-9)
	assert.InDelta(t, 0.2126, RelativeLuminance(RGB{R: 255}), 1e-9)
}

func TestContrastingTextColor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"000000", "ffffff"},
		{"ffffff", "000000"},
		{"8c8c8c", "ffffff"},
		{"8d8d8d", "000000"},
		{"f00", "000000"},
		{"330000", "ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ContrastingTextColor(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ContrastingTextColor("nothex")
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDeltaECMC(t *testing.T) {
	red := RGB{R: 255}
	green := RGB{G: 255}
	nearRed := RGB{R: 250, G: 8, B: 4}

	assert.InDelta(t, 0.0, DeltaECMC(red, red), 1e-9)

	far := DeltaECMC(red, green)
	near := DeltaECMC(red, nearRed)
	assert.Greater(t, far, 10.0)
	assert.Greater(t, near, 0.0)
	assert.Less(t, near, far)
	assert.False(t, math.IsNaN(DeltaECMC(RGB{}, RGB{R: 32, G: 32, B: 32})))
}
