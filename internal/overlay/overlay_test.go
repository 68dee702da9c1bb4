package overlay

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cadview/internal/camera"
	"github.com/Faultbox/cadview/internal/colorscheme"
	"github.com/Faultbox/cadview/pkg/math"
)

var black = colorscheme.Color{A: 1}

func TestAxes(t *testing.T) {
	b := Axes(100, black)

	// 3 solid halves plus 50 dashes on each negative half.
	assert.Equal(t, 3+3*50, b.Lines())

	for _, v := range b.Vertices {
		for _, c := range []float32{v.Pos.X, v.Pos.Y, v.Pos.Z} {
			assert.LessOrEqual(t, gomath.Abs(float64(c)), 100.0+1e-4)
		}
	}
	// Positive X half is one solid segment.
	assert.Equal(t, math.Vec3{}, b.Vertices[0].Pos)
	assert.Equal(t, math.Vec3{X: 100}, b.Vertices[1].Pos)
}

func TestDashedLine(t *testing.T) {
	var b Batch
	b.DashedLine(math.Vec3d{}, math.Vec3d{X: 10}, 1, black)
	require.Equal(t, 5, b.Lines())
	assert.Equal(t, float32(0), b.Vertices[0].Pos.X)
	assert.Equal(t, float32(1), b.Vertices[1].Pos.X)
	assert.Equal(t, float32(2), b.Vertices[2].Pos.X)

	var short Batch
	short.DashedLine(math.Vec3d{}, math.Vec3d{X: 0.5}, 1, black)
	assert.Equal(t, 1, short.Lines())
}

func TestAuxAxes(t *testing.T) {
	s := colorscheme.NewRegistry().Default()
	b := AuxAxes(10, math.Vec3d{X: 2, Y: 0, Z: 0}, s)
	require.Equal(t, 3, b.Lines())
	assert.Equal(t, math.Vec3{X: -8}, b.Vertices[0].Pos)
	assert.Equal(t, math.Vec3{X: 12}, b.Vertices[1].Pos)
	assert.Equal(t, s.Color(colorscheme.AxisX), b.Vertices[0].Color)
	assert.Equal(t, s.Color(colorscheme.AxisZ), b.Vertices[5].Color)
}

func TestCrosshairs(t *testing.T) {
	cam := camera.NewGimbal(camera.GimbalParams{Distance: 80})
	b, err := Crosshairs(cam, black)
	require.NoError(t, err)
	require.Equal(t, 4, b.Lines())
	for _, v := range b.Vertices {
		assert.InDelta(t, 10.0, gomath.Abs(float64(v.Pos.X)), 1e-6)
		assert.InDelta(t, 10.0, gomath.Abs(float64(v.Pos.Z)), 1e-6)
	}

	vec := camera.NewVector(camera.VectorParams{Eye: math.Vec3d{Y: -10}})
	b, err = Crosshairs(vec, black)
	assert.True(t, errors.Is(err, ErrCrosshairsUnsupported))
	assert.True(t, b.Empty())
}

func TestNewMarkerScale(t *testing.T) {
	tests := []struct {
		l      float64
		decade int
		major  int
	}{
		{1, 0, 1},
		{9.99, 0, 9},
		{10, 1, 1},
		{140, 2, 1},
		{999, 2, 9},
		{1000, 3, 1},
		{0.3, -1, 3},
		{0.001, -3, 1},
		{55, 1, 5},
	}
	for _, tt := range tests {
		s := NewMarkerScale(tt.l)
		if s.Decade != tt.decade || s.MajorTicks != tt.major {
			t.Errorf("NewMarkerScale(%v) = decade %d major %d; want %d %d",
				tt.l, s.Decade, s.MajorTicks, tt.decade, tt.major)
		}
		assert.InDelta(t, gomath.Pow10(tt.decade-2), s.Small, 1e-15)
	}

	assert.False(t, NewMarkerScale(0).Valid())
	assert.False(t, NewMarkerScale(-5).Valid())
	assert.False(t, NewMarkerScale(gomath.Inf(1)).Valid())
	assert.Empty(t, NewMarkerScale(0).Ticks())
}

func TestMarkerScaleDecadeContinuity(t *testing.T) {
	for v := 0.0013; v < 1e6; v *= 1.37 {
		a := NewMarkerScale(v)
		b := NewMarkerScale(v * 10)
		if b.Decade != a.Decade+1 {
			t.Errorf("decade(%v)=%d, decade(%v)=%d", v, a.Decade, v*10, b.Decade)
		}
		if a.MajorTicks < 1 || a.MajorTicks > MaxMajorTicks {
			t.Errorf("major ticks %d out of range for %v", a.MajorTicks, v)
		}
		// Tick density is bounded by the decade: at most 999 small steps.
		if n := len(a.Ticks()); n > 999 {
			t.Errorf("too many ticks (%d) for %v", n, v)
		}
	}
}

func TestMarkerScaleHandoff(t *testing.T) {
	for k := -3; k <= 5; k++ {
		p := gomath.Pow10(k)
		below := NewMarkerScale(p * (1 - 1e-9))
		at := NewMarkerScale(p)

		assert.Equal(t, MaxMajorTicks, below.MajorTicks, "just below 10^%d", k)
		assert.Equal(t, 1, at.MajorTicks, "at 10^%d", k)
		assert.Equal(t, below.Decade+1, at.Decade, "at 10^%d", k)
	}
}

func TestTicks(t *testing.T) {
	s := NewMarkerScale(3)
	ticks := s.Ticks()
	require.Len(t, ticks, 299)

	ranks := map[TickRank]int{}
	for _, tk := range ticks {
		ranks[tk.Rank]++
		assert.Less(t, tk.Position, 3.0)
	}
	assert.Equal(t, 2, ranks[LargeTick])
	assert.Equal(t, 27, ranks[MediumTick])

	assert.Equal(t, 0.03, s.TickLength(LargeTick))
	assert.Greater(t, s.TickLength(MediumTick), s.TickLength(MinorTick))
}

func TestLabelStep(t *testing.T) {
	assert.Equal(t, 10.0, NewMarkerScale(50).LabelStep())
	assert.Equal(t, 1.0, NewMarkerScale(15).LabelStep())
}

func TestDecodeMarkerValue(t *testing.T) {
	tests := []struct {
		name     string
		i, l     float64
		subdiv   int
		label    string
		decade   int
		mantissa float64
		prec     int
	}{
		{"integer grid", 10, 50, 5, "10", 1, 1, 0},
		{"tenths", 0.1 + 0.2, 0.35, 3, "0.3", -1, 3, 1},
		{"hundredths", 0.07, 0.15, 15, "0.07", -2, 7, 2},
		{"large", 3000, 5000, 5, "3000", 3, 3, 0},
		{"zero", 0, 10, 10, "0", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv := DecodeMarkerValue(tt.i, tt.l, tt.subdiv)
			assert.Equal(t, tt.label, mv.Label)
			assert.Equal(t, tt.decade, mv.Decade)
			assert.InDelta(t, tt.mantissa, mv.Mantissa, 1e-9)
			assert.Equal(t, tt.prec, mv.Precision)
		})
	}
}

func TestDecodeMarkerValueDecades(t *testing.T) {
	for v := 0.02; v < 1e5; v *= 3.1 {
		a := DecodeMarkerValue(v, v, 10)
		b := DecodeMarkerValue(v*10, v*10, 10)
		assert.Equal(t, a.Decade+1, b.Decade, "value %v", v)
	}
}

func TestAxisSpan(t *testing.T) {
	down := math.Vec3d{Z: -1}
	assert.InDelta(t, 100.0, AxisSpan(100, down, 0), 1e-9)
	assert.InDelta(t, 100.0, AxisSpan(100, down, 1), 1e-9)
	assert.InDelta(t, 1000.0, AxisSpan(100, down, 2), 1e-9, "axis seen end-on is capped at ten times")

	diag := math.Vec3d{X: 1, Y: 1}
	assert.InDelta(t, 100/gomath.Sqrt(0.5), AxisSpan(100, diag, 0), 1e-9)
}

func TestAxisScaleForeshortened(t *testing.T) {
	tests := []struct {
		name    string
		viewDir math.Vec3d
		axis    int
		coarser bool
	}{
		{"side on", math.Vec3d{Z: -1}, 0, false},
		{"oblique", math.Vec3d{X: 0.6, Y: 0.8}, 0, false},
		{"end on", math.Vec3d{X: -1}, 0, true},
		{"nearly end on", math.Vec3d{X: 0.999, Y: 0.045}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := MarkerOptions{Length: 120, ViewDir: tt.viewDir}
			per := AxisScale(opts, tt.axis)
			opts.Proportional = true
			full := AxisScale(opts, tt.axis)

			require.True(t, per.Valid())
			assert.GreaterOrEqual(t, per.Small, full.Small)
			if tt.coarser {
				assert.Greater(t, per.Small, full.Small)
			}
			assert.Equal(t, 120.0, per.Length)

			ticks := per.Ticks()
			require.NotEmpty(t, ticks)
			last := ticks[len(ticks)-1].Position
			assert.Less(t, last, 120.0)
			assert.GreaterOrEqual(t, last+per.Small, 120.0-1e-9, "ticks reach the end of the axis")
			assert.LessOrEqual(t, len(ticks), len(full.Ticks()))
		})
	}
}

func TestMarkerScaleOver(t *testing.T) {
	s := NewMarkerScale(1200).Over(120)
	assert.Equal(t, 3, s.Decade)
	assert.Equal(t, 0, s.MajorTicks)
	assert.Equal(t, 100.0, s.LabelStep())
	assert.Len(t, s.Ticks(), 11)

	assert.False(t, NewMarkerScale(0).Over(10).Valid())
	assert.False(t, NewMarkerScale(10).Over(0).Valid())
}

func TestScaleMarkersProportional(t *testing.T) {
	opts := MarkerOptions{Length: 100, ViewDir: math.Vec3d{Z: -1}, Color: black}

	perAxis := ScaleMarkers(opts)
	opts.Proportional = true
	proportional := ScaleMarkers(opts)

	assert.False(t, perAxis.Empty())
	// Viewed along Z, the Z axis keeps its full extent but with fewer,
	// coarser ticks unless markers are proportional.
	assert.Greater(t, maxAbsZ(perAxis), 85.0)
	assert.Greater(t, maxAbsZ(proportional), 90.0)
	assert.Less(t, perAxis.Lines(), proportional.Lines())

	assert.True(t, ScaleMarkers(MarkerOptions{Length: 0}).Empty())
}

func TestScaleMarkersOrigin(t *testing.T) {
	opts := MarkerOptions{Length: 100, ViewDir: math.Vec3d{Z: -1}, Color: black}
	base := ScaleMarkers(opts)

	opts.Origin = math.Vec3d{X: 10, Y: -5, Z: 2}
	moved := ScaleMarkers(opts)

	require.Equal(t, len(base.Vertices), len(moved.Vertices))
	for i := range base.Vertices {
		d := moved.Vertices[i].Pos.Sub(base.Vertices[i].Pos)
		assert.InDelta(t, 10, d.X, 1e-4)
		assert.InDelta(t, -5, d.Y, 1e-4)
		assert.InDelta(t, 2, d.Z, 1e-4)
	}
}

func TestText(t *testing.T) {
	var b Batch
	Text(&b, "8", math.Vec3d{}, math.Vec3d{X: 1}, math.Vec3d{Y: 1}, 2, black)
	assert.Equal(t, 7, b.Lines())

	for _, v := range b.Vertices {
		assert.GreaterOrEqual(t, v.Pos.Y, float32(0))
		assert.LessOrEqual(t, v.Pos.Y, float32(2))
	}

	assert.InDelta(t, 0.85*2+0.4*2, TextWidth("1.", 2), 1e-9)
}

func TestCornerAxes(t *testing.T) {
	s := colorscheme.NewRegistry().Default()
	pass, b := CornerAxes(math.Identity(), 800, 600, 1, s)

	assert.Equal(t, PassCornerAxes, pass.Name)
	assert.False(t, pass.DepthTest)
	require.False(t, b.Empty())

	// First segment is the X axis: starts at the corner and points right.
	start, end := b.Vertices[0].Pos, b.Vertices[1].Pos
	assert.InDelta(t, 60, start.X, 1e-3)
	assert.InDelta(t, 60, start.Y, 1e-3)
	assert.InDelta(t, 100, end.X, 1e-3)
	assert.InDelta(t, float64(start.Y), float64(end.Y), 1e-3)
	assert.Equal(t, s.Color(colorscheme.AxisX), b.Vertices[0].Color)

	// The pass maps window pixels onto the viewport.
	clip := pass.MVP().TransformVec3(math.Vec3{X: 800, Y: 600})
	assert.InDelta(t, 1, clip.X, 1e-5)
	assert.InDelta(t, 1, clip.Y, 1e-5)
}

func TestCornerAxesLabelsFollowRotation(t *testing.T) {
	s := colorscheme.NewRegistry().Default()
	// a quarter turn about Z points the X axis up the screen
	_, b := CornerAxes(math.RotateZ(float32(gomath.Pi/2)), 800, 600, 2, s)

	end := b.Vertices[1].Pos
	assert.InDelta(t, 120, end.X, 1e-3)
	assert.InDelta(t, 200, end.Y, 1e-3)

	// the X label sits around the projected tip at 1.3 times the length
	var minY, maxY float32 = gomath.MaxFloat32, 0
	for _, v := range b.Vertices[2:] {
		if v.Color != s.Color(colorscheme.Axes) {
			break
		}
		minY = min(minY, v.Pos.Y)
		maxY = max(maxY, v.Pos.Y)
	}
	assert.InDelta(t, 120+104, float64(minY+maxY)/2, 1e-3)
}

func TestViewDirection(t *testing.T) {
	view := math.LookAt(math.Vec3{Y: -10}, math.Vec3{}, math.Vec3{Z: 1})
	d := ViewDirection(view)
	assert.InDelta(t, 0.0, d.X, 1e-6)
	assert.InDelta(t, 1.0, d.Y, 1e-6)
	assert.InDelta(t, 0.0, d.Z, 1e-6)
}

func TestBatchFloats(t *testing.T) {
	var b Batch
	b.Line(math.Vec3d{X: 1}, math.Vec3d{Y: 2}, colorscheme.Color{R: 1, A: 1})
	f := b.Floats()
	require.Len(t, f, 2*FloatsPerVertex)
	assert.Equal(t, []float32{1, 0, 0, 1, 0, 0, 1}, f[:FloatsPerVertex])
}

func maxAbsZ(b Batch) float64 {
	m := 0.0
	for _, v := range b.Vertices {
		m = gomath.Max(m, gomath.Abs(float64(v.Pos.Z)))
	}
	return m
}
