// Package layer extracts the theme label and color assignments from pasted
// S2 layer source.
package layer

import (
	"regexp"
	"strings"

	"github.com/emiliopalmerini/dwstyles/internal/colorspace"
)

var (
	labelPattern = regexp.MustCompile(`layerinfo\s+"?redist_uniq"?\s*=\s*"([a-z/A-Z0-9_]+)"\s*;`)
	colorPattern = regexp.MustCompile(`set\s+([a-zA-Z_]+)\s*=\s*"#([A-Fa-f0-9]{3,6})"\s*;`)
)

// HexVariables lists the variables assigned one color, in source order.
// A variable reassigned to the same color appears more than once.
type HexVariables struct {
	Hex       string
	Variables []string
}

// Rejection records a color assignment whose value did not normalize.
type Rejection struct {
	Line     int
	Variable string
	Value    string
	Err      error
}

// Layer is the result of parsing one layer.
type Layer struct {
	Label    *string
	Colors   []HexVariables
	Rejected []Rejection

	index map[string]int
}

// Parse scans text line by line. While no label has been found, a line that
// matches the redist_uniq declaration sets it and is not checked for a color
// assignment. Every other line matching a color assignment is recorded.
func Parse(text string) *Layer {
	l := &Layer{index: make(map[string]int)}

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		line = strings.TrimSuffix(line, "\r")

		if l.Label == nil {
			if m := labelPattern.FindStringSubmatch(line); m != nil {
				label := m[1]
				l.Label = &label
				continue
			}
		}

		m := colorPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		hex, err := colorspace.Normalize(m[2])
		if err != nil {
			l.Rejected = append(l.Rejected, Rejection{Line: lineNo, Variable: m[1], Value: m[2], Err: err})
			continue
		}
		l.add(hex, m[1])
	}

	return l
}

func (l *Layer) add(hex, variable string) {
	if i, ok := l.index[hex]; ok {
		l.Colors[i].Variables = append(l.Colors[i].Variables, variable)
		return
	}
	l.index[hex] = len(l.Colors)
	l.Colors = append(l.Colors, HexVariables{Hex: hex, Variables: []string{variable}})
}

// LabelOrEmpty returns the label, or "" when none was declared.
func (l *Layer) LabelOrEmpty() string {
	if l.Label == nil {
		return ""
	}
	return *l.Label
}

// Variables returns the variables assigned hex, or nil.
func (l *Layer) Variables(hex string) []string {
	for _, c := range l.Colors {
		if c.Hex == hex {
			return c.Variables
		}
	}
	return nil
}

// Hexes returns the distinct hexes in first-seen order.
func (l *Layer) Hexes() []string {
	hexes := make([]string, len(l.Colors))
	for i, c := range l.Colors {
		hexes[i] = c.Hex
	}
	return hexes
}
