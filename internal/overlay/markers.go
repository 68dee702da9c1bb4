package overlay

import (
	gomath "math"
	"strconv"

	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/pkg/math"
)

// MaxMajorTicks bounds MarkerScale.MajorTicks.
const MaxMajorTicks = 9

// Minimum share of the axis length an axis seen end-on still gets.
const minAxisSpan = 0.1

// TickRank orders tick marks by the step they fall on.
type TickRank int

const (
	MinorTick TickRank = iota
	MediumTick
	LargeTick
)

// Tick is one mark along a half-axis.
type Tick struct {
	Index    int
	Position float64
	Rank     TickRank
}

// MarkerScale is the decade decomposition of an axis length l: large
// ticks fall on multiples of 10^Decade, medium ticks on 10^(Decade-1) and
// minor ticks on 10^(Decade-2). Decade is the largest integer with
// 10^Decade <= l, so MajorTicks stays in [1, 9]; crossing a power of ten
// moves Decade up by one and MajorTicks from 9 to 1.
type MarkerScale struct {
	Length     float64
	Decade     int
	Small      float64
	Medium     float64
	Large      float64
	MajorTicks int
}

// NewMarkerScale decomposes l. Non-positive or non-finite lengths yield a
// scale without ticks.
func NewMarkerScale(l float64) MarkerScale {
	if !(l > 0) || gomath.IsInf(l, 0) {
		return MarkerScale{Length: l}
	}
	d := decade(l)
	large := gomath.Pow10(d)

	major := int(gomath.Floor(l / large * (1 + 1e-12)))
	if major < 1 {
		major = 1
	}
	if major > MaxMajorTicks {
		major = MaxMajorTicks
	}

	return MarkerScale{
		Length:     l,
		Decade:     d,
		Small:      gomath.Pow10(d - 2),
		Medium:     gomath.Pow10(d - 1),
		Large:      large,
		MajorTicks: major,
	}
}

// Valid reports whether the scale has ticks.
func (s MarkerScale) Valid() bool {
	return s.Small > 0 && s.Length > 0
}

// Over keeps the steps of s and spreads them over an axis of length l.
// MajorTicks counts the large steps inside l and may drop to zero when the
// steps were chosen for a longer axis.
func (s MarkerScale) Over(l float64) MarkerScale {
	if !s.Valid() || !(l > 0) || gomath.IsInf(l, 0) {
		return MarkerScale{Length: l}
	}
	s.Length = l
	s.MajorTicks = int(gomath.Floor(l / s.Large * (1 + 1e-12)))
	if s.MajorTicks > MaxMajorTicks {
		s.MajorTicks = MaxMajorTicks
	}
	return s
}

// Ticks returns every small step strictly inside (0, Length).
func (s MarkerScale) Ticks() []Tick {
	if !s.Valid() {
		return nil
	}
	n := int(gomath.Ceil(s.Length/s.Small-1e-9)) - 1
	ticks := make([]Tick, 0, n)
	for k := 1; k <= n; k++ {
		rank := MinorTick
		switch {
		case k%100 == 0:
			rank = LargeTick
		case k%10 == 0:
			rank = MediumTick
		}
		ticks = append(ticks, Tick{Index: k, Position: float64(k) * s.Small, Rank: rank})
	}
	return ticks
}

// TickLength returns the drawn length of a tick of the given rank.
func (s MarkerScale) TickLength(r TickRank) float64 {
	switch r {
	case LargeTick:
		return s.Length / 100
	case MediumTick:
		return s.Length / 200
	default:
		return s.Length / 500
	}
}

// LabelStep returns the spacing of labeled ticks: large ticks, or medium
// ticks when there are too few large ones to read the scale from.
func (s MarkerScale) LabelStep() float64 {
	if s.MajorTicks <= 2 {
		return s.Medium
	}
	return s.Large
}

// MarkerValue is a tick value decomposed for display.
type MarkerValue struct {
	// Value is the tick value rounded to Precision decimals.
	Value float64
	// Decade and Mantissa satisfy Value = Mantissa * 10^Decade with
	// 1 <= |Mantissa| < 10. Both are zero for a zero value.
	Decade   int
	Mantissa float64
	// Precision is the number of decimals needed to print values on the
	// l/subdivisions grid.
	Precision int
	Label     string
}

// DecodeMarkerValue decomposes the tick value i of an axis of length l
// divided into subdivisions labeled steps.
func DecodeMarkerValue(i, l float64, subdivisions int) MarkerValue {
	if subdivisions < 1 {
		subdivisions = 1
	}
	prec := 0
	if step := l / float64(subdivisions); step > 0 && !gomath.IsInf(step, 0) {
		if d := decade(step * (1 + 1e-9)); d < 0 {
			prec = -d
		}
	}

	scale := gomath.Pow10(prec)
	value := gomath.Round(i*scale) / scale

	mv := MarkerValue{
		Value:     value,
		Precision: prec,
		Label:     strconv.FormatFloat(value, 'f', prec, 64),
	}
	if value != 0 {
		mv.Decade = decade(gomath.Abs(value))
		mv.Mantissa = value / gomath.Pow10(mv.Decade)
	}
	return mv
}

// MarkerOptions controls ScaleMarkers.
type MarkerOptions struct {
	// Length is the half-axis length, the same l the axes use.
	Length float64
	// ViewDir is the world-space gaze direction.
	ViewDir math.Vec3d
	// Proportional gives every axis the scale of the full length.
	Proportional bool
	Color        colorscheme.Color
	// Origin moves the markers onto axes through a point other than the
	// world origin; labels stay relative to it.
	Origin math.Vec3d
}

// AxisSpan returns the length an axis picks its steps from when markers are
// not proportional: the axis length divided by the share of it left visible
// after foreshortening, so an axis pointing at the viewer gets a coarser
// step. The share never drops below a tenth, which bounds the step at one
// decade above the proportional one.
func AxisSpan(l float64, viewDir math.Vec3d, axis int) float64 {
	v := viewDir.Normalize()
	c := v.Dot(unitAxes[axis])
	visible := gomath.Sqrt(gomath.Max(0, 1-c*c))
	return l / gomath.Max(minAxisSpan, visible)
}

// AxisScale returns the marker scale of one axis. Ticks always cover the
// whole half-axis of length opts.Length.
func AxisScale(opts MarkerOptions, axis int) MarkerScale {
	if opts.Proportional {
		return NewMarkerScale(opts.Length)
	}
	return NewMarkerScale(AxisSpan(opts.Length, opts.ViewDir, axis)).Over(opts.Length)
}

// Tick marks on each axis point along another axis.
var tickDirs = [3]math.Vec3d{{Y: 1}, {X: 1}, {X: 1}}

// ScaleMarkers draws tick marks and labels on all six half-axes.
func ScaleMarkers(opts MarkerOptions) Batch {
	var b Batch
	if !(opts.Length > 0) {
		return b
	}
	glyphSize := opts.Length / 100

	for axis, e := range unitAxes {
		scale := AxisScale(opts, axis)
		if !scale.Valid() {
			continue
		}
		tickDir := tickDirs[axis]
		ticks := scale.Ticks()

		for _, sign := range [2]float64{1, -1} {
			dir := e.Scale(sign)
			for _, t := range ticks {
				p := dir.Scale(t.Position)
				half := tickDir.Scale(scale.TickLength(t.Rank) / 2)
				b.Line(p.Sub(half), p.Add(half), opts.Color)
			}
			drawLabels(&b, scale, e, dir, tickDir, sign, glyphSize, opts.Color)
		}
	}

	if opts.Origin != (math.Vec3d{}) {
		o := opts.Origin.Vec3()
		for i := range b.Vertices {
			b.Vertices[i].Pos = b.Vertices[i].Pos.Add(o)
		}
	}
	return b
}

func drawLabels(b *Batch, scale MarkerScale, axisDir, dir, tickDir math.Vec3d, sign, size float64, color colorscheme.Color) {
	step := scale.LabelStep()
	subdivisions := int(gomath.Floor(scale.Length / step * (1 + 1e-12)))
	if subdivisions < 1 {
		return
	}
	offset := tickDir.Scale(-(scale.TickLength(LargeTick) + size*1.5))

	for j := 1; float64(j)*step < scale.Length*(1-1e-12); j++ {
		mv := DecodeMarkerValue(float64(j)*step, scale.Length, subdivisions)
		label := mv.Label
		if sign < 0 {
			label = "-" + label
		}
		at := dir.Scale(mv.Value).Add(offset)
		origin := at.Sub(axisDir.Scale(TextWidth(label, size) / 2))
		Text(b, label, origin, axisDir, tickDir, size, color)
	}
}

// decade returns floor(log10(v)) for v > 0, corrected for rounding in
// Log10 near powers of ten.
func decade(v float64) int {
	d := int(gomath.Floor(gomath.Log10(v)))
	if gomath.Pow10(d+1) <= v {
		d++
	} else if gomath.Pow10(d) > v {
		d--
	}
	return d
}
