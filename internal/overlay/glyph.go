package overlay

import (
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/pkg/math"
)

// Stroke glyphs on a cell 0.6 wide and 1 high, baseline at y=0.
type stroke [2][2]float64

var (
	segA = stroke{{0, 1}, {0.6, 1}}
	segB = stroke{{0.6, 1}, {0.6, 0.5}}
	segC = stroke{{0.6, 0.5}, {0.6, 0}}
	segD = stroke{{0, 0}, {0.6, 0}}
	segE = stroke{{0, 0.5}, {0, 0}}
	segF = stroke{{0, 1}, {0, 0.5}}
	segG = stroke{{0, 0.5}, {0.6, 0.5}}
)

var glyphs = map[rune][]stroke{
	'0': {segA, segB, segC, segD, segE, segF},
	'1': {segB, segC},
	'2': {segA, segB, segG, segE, segD},
	'3': {segA, segB, segG, segC, segD},
	'4': {segF, segG, segB, segC},
	'5': {segA, segF, segG, segC, segD},
	'6': {segA, segF, segG, segE, segC, segD},
	'7': {segA, segB, segC},
	'8': {segA, segB, segC, segD, segE, segF, segG},
	'9': {segA, segB, segC, segD, segF, segG},
	'-': {segG},
	'.': {{{0.1, 0}, {0.1, 0.1}}},
	'X': {{{0, 1}, {0.6, 0}}, {{0.6, 1}, {0, 0}}},
	'Y': {{{0, 1}, {0.3, 0.5}}, {{0.6, 1}, {0.3, 0.5}}, {{0.3, 0.5}, {0.3, 0}}},
	'Z': {segA, {{0.6, 1}, {0, 0}}, segD},
}

// advance returns the horizontal step after r, in glyph heights.
func advance(r rune) float64 {
	if r == '.' {
		return 0.4
	}
	return 0.85
}

// TextWidth returns the width of s drawn at the given height.
func TextWidth(s string, size float64) float64 {
	w := 0.0
	for _, r := range s {
		w += advance(r)
	}
	return w * size
}

// Text draws s as strokes starting at origin. right and up span the text
// plane and should be unit length; size is the glyph height. Runes without
// a glyph leave a gap.
func Text(b *Batch, s string, origin, right, up math.Vec3d, size float64, color colorscheme.Color) {
	pen := origin
	for _, r := range s {
		for _, st := range glyphs[r] {
			p0 := pen.Add(right.Scale(st[0][0] * size)).Add(up.Scale(st[0][1] * size))
			p1 := pen.Add(right.Scale(st[1][0] * size)).Add(up.Scale(st[1][1] * size))
			b.Line(p0, p1, color)
		}
		pen = pen.Add(right.Scale(advance(r) * size))
	}
}
