package layer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
)

func TestParse_LabelAndColors(t *testing.T) {
	text := "layerinfo \"redist_uniq\" = \"bases/foo\";\n" +
		"set color_page_background = \"#112233\";\n" +
		"set color_page_text = \"#fff\";"

	l := Parse(text)

	require.NotNil(t, l.Label)
	assert.Equal(t, "bases/foo", *l.Label)
	assert.Equal(t, []HexVariables{
		{Hex: "112233", Variables: []string{"color_page_background"}},
		{Hex: "ffffff", Variables: []string{"color_page_text"}},
	}, l.Colors)
	assert.Empty(t, l.Rejected)
}

func TestParse_UnquotedKey(t *testing.T) {
	l := Parse(`layerinfo redist_uniq = "sundaymorning/crisp";`)

	require.NotNil(t, l.Label)
	assert.Equal(t, "sundaymorning/crisp", *l.Label)
}

func TestParse_NoLabel(t *testing.T) {
	l := Parse(`set color_link = "#0000FF";`)

	assert.Nil(t, l.Label)
	assert.Equal(t, "", l.LabelOrEmpty())
	assert.Equal(t, []string{"0000ff"}, l.Hexes())
}

func TestParse_FirstLabelWins(t *testing.T) {
	text := "layerinfo redist_uniq = \"first/one\";\n" +
		"layerinfo redist_uniq = \"second/one\";"

	l := Parse(text)

	require.NotNil(t, l.Label)
	assert.Equal(t, "first/one", *l.Label)
}

func TestParse_LabelLineSkipsColorMatch(t *testing.T) {
	l := Parse(`layerinfo redist_uniq = "bases/foo"; set color_link = "#abc";`)

	require.NotNil(t, l.Label)
	assert.Empty(t, l.Colors)
}

func TestParse_ColorOnLineAfterLabelFound(t *testing.T) {
	text := "layerinfo redist_uniq = \"bases/foo\";\n" +
		"layerinfo redist_uniq = \"bases/bar\"; set color_link = \"#abc\";"

	l := Parse(text)

	assert.Equal(t, []string{"color_link"}, l.Variables("aabbcc"))
}

func TestParse_SharedAndRepeatedVariables(t *testing.T) {
	text := `set color_page_background = "#FFFFFF";
set color_entry_background = "#ffffff";
set color_page_link = "#336699";
set color_page_background = "#ffffff";`

	l := Parse(text)

	assert.Equal(t, []string{"ffffff", "336699"}, l.Hexes())
	assert.Equal(t, []string{"color_page_background", "color_entry_background", "color_page_background"}, l.Variables("ffffff"))
	assert.Nil(t, l.Variables("000000"))
}

func TestParse_RejectsBadLengths(t *testing.T) {
	text := "set color_a = \"#abcd\";\nset color_b = \"#12345\";\nset color_c = \"#123456\";"

	l := Parse(text)

	assert.Equal(t, []string{"123456"}, l.Hexes())
	require.Len(t, l.Rejected, 2)
	assert.Equal(t, 1, l.Rejected[0].Line)
	assert.Equal(t, "color_a", l.Rejected[0].Variable)
	assert.Equal(t, "abcd", l.Rejected[0].Value)
	assert.True(t, errors.Is(l.Rejected[1].Err, colorspace.ErrInvalidFormat))
}

func TestParse_IgnoresUnrelatedLines(t *testing.T) {
	text := `# comment
set layout_type = "two-columns-left";
set font_base = "Verdana";
set color_header_background = "#000";`

	l := Parse(text)

	assert.Equal(t, []string{"000000"}, l.Hexes())
}

func TestParse_LongLine(t *testing.T) {
	text := "set color_page_text = \"#fff\";\n" +
		"# " + strings.Repeat("x", 2<<20) + "\n" +
		"set color_page_background = \"#000\";\r\n" +
		"set color_page_link = \"#12345\";"

	l := Parse(text)

	assert.Equal(t, []string{"ffffff", "000000"}, l.Hexes())
	require.Len(t, l.Rejected, 1)
	assert.Equal(t, 4, l.Rejected[0].Line)
}
