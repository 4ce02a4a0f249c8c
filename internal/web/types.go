package web

import (
	"github.com/emiliopalmerini/dwstyles/internal/distance"
	"github.com/emiliopalmerini/dwstyles/internal/domain"
	"github.com/emiliopalmerini/dwstyles/internal/reconcile"
	"github.com/emiliopalmerini/dwstyles/internal/util"
)

type colorJSON struct {
	Hex        string `json:"hex"`
	R          uint8  `json:"r"`
	G          uint8  `json:"g"`
	B          uint8  `json:"b"`
	H          int    `json:"h"`
	S          int    `json:"s"`
	V          int    `json:"v"`
	RoundedHex string `json:"rounded_hex"`
	IsRound    bool   `json:"is_round"`
	InThemes   bool   `json:"in_themes"`
	TextColor  string `json:"text_color"`
}

type colorDetailJSON struct {
	colorJSON
	Catalog bool        `json:"catalog"`
	Groups  []string    `json:"groups"`
	Similar []colorJSON `json:"similar"`
}

type neighborJSON struct {
	colorJSON
	Distance float64 `json:"distance"`
}

type groupJSON struct {
	ID           string  `json:"id"`
	Codename     string  `json:"codename"`
	Label        string  `json:"label"`
	Description  *string `json:"description,omitempty"`
	Category     string  `json:"category"`
	DisplayColor string  `json:"display_color"`
	Automatic    bool    `json:"automatic"`
}

type themeJSON struct {
	ID       string `json:"id"`
	LayoutID string `json:"layout_id"`
	Name     string `json:"name"`
	LabelID  string `json:"label_id"`
	Official bool   `json:"official"`
}

type themeColorJSON struct {
	colorJSON
	Category  string   `json:"category"`
	Variables []string `json:"variables"`
}

type paletteJSON struct {
	Theme    themeJSON        `json:"theme"`
	Features []themeColorJSON `json:"features"`
	Accents  []themeColorJSON `json:"accents"`
}

type importJSON struct {
	Label              string     `json:"label"`
	Theme              *themeJSON `json:"theme,omitempty"`
	Colors             int        `json:"colors"`
	ColorsCreated      []string   `json:"colors_created"`
	ThemeColorsCreated int        `json:"theme_colors_created"`
	ThemeColorsUpdated int        `json:"theme_colors_updated"`
	Rejected           int        `json:"rejected"`
	TagsAdded          []string   `json:"tags_added,omitempty"`
	TagsRemoved        []string   `json:"tags_removed,omitempty"`
	Archive            string     `json:"archive,omitempty"`
}

type errorJSON struct {
	Error string `json:"error"`
	Label string `json:"label,omitempty"`
}

func toColorJSON(c *domain.Color) colorJSON {
	return colorJSON{
		Hex:        c.Hex,
		R:          c.RGB.R,
		G:          c.RGB.G,
		B:          c.RGB.B,
		H:          c.HSV.H,
		S:          c.HSV.S,
		V:          c.HSV.V,
		RoundedHex: c.RoundedHex,
		IsRound:    c.IsRound,
		InThemes:   c.InThemes,
		TextColor:  c.ContrastText(),
	}
}

func toNeighborsJSON(neighbors []distance.Neighbor) []neighborJSON {
	out := make([]neighborJSON, len(neighbors))
	for i, n := range neighbors {
		out[i] = neighborJSON{colorJSON: toColorJSON(n.Color), Distance: n.Distance}
	}
	return out
}

func toThemeJSON(t *domain.Theme) themeJSON {
	return themeJSON{
		ID:       t.ID,
		LayoutID: t.LayoutID,
		Name:     t.Name,
		LabelID:  t.LabelID,
		Official: t.Official,
	}
}

func toPaletteJSON(p *reconcile.Palette) paletteJSON {
	convert := func(entries []reconcile.PaletteEntry) []themeColorJSON {
		out := make([]themeColorJSON, len(entries))
		for i, e := range entries {
			out[i] = themeColorJSON{
				colorJSON: toColorJSON(e.Color),
				Category:  string(e.ThemeColor.Category),
				Variables: util.SplitVariables(e.ThemeColor.Variables),
			}
		}
		return out
	}
	return paletteJSON{
		Theme:    toThemeJSON(p.Theme),
		Features: convert(p.Features),
		Accents:  convert(p.Accents),
	}
}
